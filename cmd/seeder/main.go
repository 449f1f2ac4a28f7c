// Command seeder loads fixture documents into a running mock server.
//
// The seed file is a JSON object mapping collection routes to arrays of
// documents:
//
//	{
//	  "/pets": [{"id": "1", "name": "rex"}, {"name": "milo"}],
//	  "/orders": [{"id": "o-1", "petId": "1"}]
//	}
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"sort"
	"time"

	"github.com/specmock/specmock/internal/adapter"
	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/workers"
	"github.com/specmock/specmock/models"
)

func main() {
	var (
		address     string
		seedFile    string
		concurrency int
		timeout     time.Duration
		reset       bool
	)

	flag.StringVar(&address, "a", "localhost:8080", "mock server address")
	flag.StringVar(&seedFile, "f", "seed.json", "path to the JSON seed file")
	flag.IntVar(&concurrency, "w", 4, "number of concurrent uploads")
	flag.DurationVar(&timeout, "t", 10*time.Second, "per-request timeout")
	flag.BoolVar(&reset, "reset", false, "wipe the server's store before seeding")
	flag.Parse()

	log := logger.NewLogger("specmock-seeder")
	ctx := context.Background()

	serverAdapter, err := adapter.NewHTTPServerAdapter(address, timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	if err = serverAdapter.Health(ctx); err != nil {
		log.Fatal().Err(err).Str("address", address).Msg("mock server is not answering")
	}

	if reset {
		if err = serverAdapter.Reset(ctx); err != nil {
			log.Fatal().Err(err).Msg("reset server store")
		}
		log.Info().Msg("server store wiped")
	}

	seed, err := loadSeedFile(seedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", seedFile).Msg("load seed file")
	}

	tasks := buildUploadTasks(serverAdapter, seed, log)

	pool := workers.NewPool(concurrency, log)
	if err = pool.Run(ctx, tasks); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().Int("documents", len(tasks)).Msg("seeding finished")
}

func loadSeedFile(path string) (map[string][]models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seed map[string][]models.Document
	if err = json.Unmarshal(data, &seed); err != nil {
		return nil, err
	}

	return seed, nil
}

func buildUploadTasks(serverAdapter adapter.ServerAdapter, seed map[string][]models.Document, log *logger.Logger) []workers.Task {
	collections := make([]string, 0, len(seed))
	for collection := range seed {
		collections = append(collections, collection)
	}
	sort.Strings(collections)

	var tasks []workers.Task
	for _, collection := range collections {
		for _, doc := range seed[collection] {
			tasks = append(tasks, func(ctx context.Context) error {
				stored, err := serverAdapter.CreateDocument(ctx, collection, doc)
				if err != nil {
					return err
				}

				log.Debug().
					Str("collection", collection).
					Str("id", stored.ID()).
					Msg("document seeded")

				return nil
			})
		}
	}

	return tasks
}
