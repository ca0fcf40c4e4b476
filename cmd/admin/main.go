package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	redisDriver "github.com/redis/go-redis/v9"

	"teammatch/internal/config"
	appRedis "teammatch/internal/redis"
	"teammatch/internal/services"
	"teammatch/internal/storage"
	"teammatch/internal/taxonomy"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  ./admin taxonomy              - list skill categories and their keywords")
	fmt.Println("  ./admin show-user <userID>    - show a user's profile and skill categories")
	fmt.Println("  ./admin history <userID>      - show a user's recent searches")
	fmt.Println("  ./admin recommend <userID>    - show the dashboard recommendations for a user")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(os.Getenv("TEAMMATCH_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	tx, err := taxonomy.New(cfg.Taxonomy)
	if err != nil {
		log.Fatalf("Invalid skill taxonomy: %v", err)
	}

	if os.Args[1] == "taxonomy" {
		showTaxonomy(tx)
		return
	}

	db, err := storage.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	userRepo := storage.NewGormUserRepository(db)
	historyRepo := historyRepository(cfg, storage.NewGormSearchHistoryRepository(db))

	switch os.Args[1] {
	case "show-user":
		showUser(userRepo, tx, userIDArg())
	case "history":
		showHistory(historyRepo, userIDArg())
	case "recommend":
		showRecommendations(services.NewRecommendationService(userRepo, historyRepo, tx), userIDArg())
	default:
		usage()
		log.Fatalf("Unknown command: %s", os.Args[1])
	}
}

func userIDArg() uint {
	if len(os.Args) < 3 {
		log.Fatalf("A user ID is required")
	}
	userID, err := strconv.ParseUint(os.Args[2], 10, 32)
	if err != nil {
		log.Fatalf("Invalid user ID: %v", err)
	}
	return uint(userID)
}

// historyRepository reads history from wherever the web server writes it.
func historyRepository(cfg config.Config, fallback storage.SearchHistoryRepository) storage.SearchHistoryRepository {
	if cfg.History.Backend != "redis" {
		return fallback
	}
	client := redisDriver.NewClient(&redisDriver.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	return appRedis.NewRedisSearchHistory(client, cfg.History.KeyPrefix)
}

func showTaxonomy(tx *taxonomy.Taxonomy) {
	fmt.Printf("%d skill categories:\n", len(tx.Categories()))
	fmt.Println("--------------------------------------")
	for _, name := range tx.Categories() {
		fmt.Printf("%-14s %s\n", name, strings.Join(tx.Keywords(name), ", "))
	}
}

func showUser(repo storage.UserRepository, tx *taxonomy.Taxonomy, userID uint) {
	user, err := repo.GetByID(context.Background(), userID)
	if err != nil {
		log.Fatalf("Failed to find user %d: %v", userID, err)
	}

	fmt.Printf("User %d:\n", user.ID)
	fmt.Println("--------------------------------------")
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Skills: %s\n", strings.Join(user.SkillList(), ", "))
	fmt.Printf("Categories: %s\n", strings.Join(tx.CategoriesMatching(user.Skills), ", "))
	fmt.Printf("Location: %s\n", user.Location)
	fmt.Printf("Registered: %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
}

func showHistory(repo storage.SearchHistoryRepository, userID uint) {
	terms, err := repo.RecentTerms(context.Background(), userID, services.HistoryWindow)
	if err != nil {
		log.Fatalf("Failed to load search history: %v", err)
	}

	fmt.Printf("Last %d searches of user %d (newest first):\n", len(terms), userID)
	fmt.Println("--------------------------------------")
	for i, term := range terms {
		fmt.Printf("#%d %s\n", i+1, term)
	}
}

func showRecommendations(rs services.RecommendationService, userID uint) {
	users, err := rs.Recommend(context.Background(), userID)
	if err != nil {
		log.Fatalf("Failed to compute recommendations: %v", err)
	}

	fmt.Printf("%d recommendations for user %d:\n", len(users), userID)
	fmt.Println("--------------------------------------")
	for i, u := range users {
		fmt.Printf("#%d ID: %d, Username: %s, Skills: %s\n", i+1, u.ID, u.Username, u.Skills)
	}
}
