package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/Tchybbi/Smatico/internal/config"
	"github.com/Tchybbi/Smatico/internal/storage"
	"github.com/Tchybbi/Smatico/internal/store"
)

func main() {
	email := flag.String("email", "", "Email of the user to promote to admin")
	flag.Parse()

	if *email == "" {
		log.Fatalf("usage: go run cmd/adminutil/promote_admin/main.go -email user@example.com")
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	kv, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer kv.Close()

	st := store.New(kv)
	if err := st.Load(ctx); err != nil {
		log.Fatalf("store: %v", err)
	}

	var promoted bool
	for _, u := range st.Users() {
		if u.Email != *email {
			continue
		}
		if _, err := st.PromoteToAdmin(u.ID); err != nil {
			log.Fatalf("failed to promote user to admin: %v", err)
		}
		promoted = true
	}
	if !promoted {
		log.Fatalf("no user found with email: %s", *email)
	}

	if err := st.Close(); err != nil {
		log.Fatalf("failed to persist snapshot: %v", err)
	}

	fmt.Printf("User %s promoted to admin.\n", *email)
}
