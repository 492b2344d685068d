package main

import (
	"flag"
	"log"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/repository"
	"ucstore-inventory/pkg/config"
	"ucstore-inventory/pkg/database"

	"gorm.io/gorm"
)

func main() {
	reset := flag.Bool("reset", false, "wipe products, sales and purchases before seeding")
	flag.Parse()

	// 1. Load Env
	cfg := config.Load()

	// 2. Setup Database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	if err := model.Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	// 3. Optionally wipe the ledger
	if *reset {
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, table := range []interface{}{&model.Sale{}, &model.Purchase{}, &model.Product{}} {
				if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Fatalf("❌ Failed to reset tables: %v", err)
		}
		log.Println("Products, sales and purchases cleared")
	}

	// 4. Seed
	seeded, err := repository.NewProductRepo(db).SeedDefaults()
	if err != nil {
		log.Fatalf("❌ Failed to seed products: %v", err)
	}
	if seeded == 0 {
		log.Println("Catalog already populated, nothing to seed")
		return
	}
	log.Printf("✅ Seeded %d demo products into %s", seeded, cfg.DB.Driver)
}
