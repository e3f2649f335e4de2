// cmd/seed/main.go
// Seed resets the database and loads a demo dataset: clients and contractors,
// contracts in every lifecycle status, and a mix of paid and unpaid jobs.
package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gigpay/internal/config"
	"gigpay/internal/domain"
	"gigpay/internal/repository/postgres"
	"gigpay/pkg/db"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	if _, err := database.ExecContext(ctx, `TRUNCATE TABLE jobs, contracts, profiles RESTART IDENTITY CASCADE`); err != nil {
		log.Fatalf("reset tables: %v", err)
	}

	if err := seed(ctx, database); err != nil {
		log.Fatalf("seed data: %v", err)
	}

	log.Println("seed data loaded")
}

func seed(ctx context.Context, database *sqlx.DB) error {
	profileRepo := postgres.NewProfileRepository(database)
	contractRepo := postgres.NewContractRepository(database)
	jobRepo := postgres.NewJobRepository(database)

	profiles := []*domain.Profile{
		profile("Harry", "Potter", "wizard", domain.RoleClient, "1150.00"),
		profile("Mr", "Robot", "hacker", domain.RoleClient, "231.11"),
		profile("John", "Snow", "knows nothing", domain.RoleClient, "451.30"),
		profile("Ash", "Ketchum", "pokemon master", domain.RoleClient, "1.30"),
		profile("John", "Lenon", "musician", domain.RoleContractor, "64.00"),
		profile("Linus", "Torvalds", "programmer", domain.RoleContractor, "1214.00"),
		profile("Alan", "Turing", "programmer", domain.RoleContractor, "22.00"),
		profile("Aragorn", "II Elessar", "fighter", domain.RoleContractor, "314.00"),
	}
	for _, p := range profiles {
		if err := profileRepo.CreateProfile(ctx, database, p); err != nil {
			return err
		}
	}

	contracts := []*domain.Contract{
		contract(profiles[0].ID, profiles[4].ID, domain.ContractStatusTerminated),
		contract(profiles[0].ID, profiles[5].ID, domain.ContractStatusInProgress),
		contract(profiles[1].ID, profiles[5].ID, domain.ContractStatusInProgress),
		contract(profiles[1].ID, profiles[6].ID, domain.ContractStatusInProgress),
		contract(profiles[2].ID, profiles[7].ID, domain.ContractStatusNew),
		contract(profiles[2].ID, profiles[6].ID, domain.ContractStatusInProgress),
		contract(profiles[3].ID, profiles[6].ID, domain.ContractStatusInProgress),
	}
	for _, c := range contracts {
		if err := contractRepo.CreateContract(ctx, database, c); err != nil {
			return err
		}
	}

	paidAt := time.Date(2020, 8, 15, 19, 11, 26, 0, time.UTC)
	jobs := []*domain.Job{
		job(contracts[0].ID, "work", "200.00", false, nil),
		job(contracts[1].ID, "work", "201.00", false, nil),
		job(contracts[2].ID, "work", "202.00", false, nil),
		job(contracts[3].ID, "work", "200.00", false, nil),
		job(contracts[4].ID, "work", "200.00", false, nil),
		job(contracts[5].ID, "work", "21.00", true, &paidAt),
		job(contracts[6].ID, "work", "121.00", true, &paidAt),
		job(contracts[1].ID, "work", "200.00", true, &paidAt),
	}
	for _, j := range jobs {
		if err := jobRepo.CreateJob(ctx, database, j); err != nil {
			return err
		}
	}

	return nil
}

func profile(firstName, lastName, profession string, role domain.Role, balance string) *domain.Profile {
	p := domain.NewProfile(firstName, lastName, profession, role)
	p.Balance = decimal.RequireFromString(balance)
	return p
}

func contract(clientID, contractorID int64, status domain.ContractStatus) *domain.Contract {
	now := time.Now().UTC()
	return &domain.Contract{
		ClientID:     clientID,
		ContractorID: contractorID,
		Terms:        "bla bla bla",
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func job(contractID int64, description, price string, paid bool, paymentDate *time.Time) *domain.Job {
	now := time.Now().UTC()
	return &domain.Job{
		ContractID:  contractID,
		Description: description,
		Price:       decimal.RequireFromString(price),
		Paid:        paid,
		PaymentDate: paymentDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
