package dataspace

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iot-data-space/dataspace/pkg/config"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load entities into the entity store",
	Long: `Load a JSON file of NGSI-LD entities into the entity store.

The file holds an object with an "items" list; each item is posted to
the store as JSON-LD and should carry its own @context. Items that fail
to load are reported and skipped; the command exits non-zero if any item
failed.`,
	RunE: runSeed,
}

var seedFile string

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedFile, "file", "data/items.json", "Path to the items file")
	seedCmd.Flags().String("broker-url", "", "Entity store base URL")
}

type itemsDocument struct {
	Items []json.RawMessage `json:"items"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	// .env keeps broker settings out of the shell for local runs.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("broker-url") {
		cfg.Broker.URL, _ = cmd.Flags().GetString("broker-url")
	}

	log, closeTelemetry := newLogger(cfg)
	defer closeTelemetry()

	st, err := newStoreClient(cfg, log)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("read items file: %w", err)
	}

	var doc itemsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode items file: %w", err)
	}
	if len(doc.Items) == 0 {
		return fmt.Errorf("no items defined in %s", seedFile)
	}

	ctx := context.Background()
	failed := 0
	for i, item := range doc.Items {
		if err := st.CreateEntity(ctx, item); err != nil {
			log.Error("failed to create entity", "index", i, "error", err)
			failed++
		}
	}

	log.Info("seeded entity store",
		"total", len(doc.Items),
		"created", len(doc.Items)-failed,
		"failed", failed,
		"broker", st.BrokerURL(),
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d items failed to load", failed, len(doc.Items))
	}
	return nil
}
