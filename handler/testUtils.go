package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"paperdoll_backend/config"
	"paperdoll_backend/repository"
	"paperdoll_backend/service"
)

const (
	testCharacterLimit = 50
	testLogLimit       = 20
)

func testConfig() *config.Config {
	return &config.Config{
		Version:        "test",
		Dsn:            "paperdoll:password@tcp(127.0.0.1:3306)/?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true", // Modify credentials
		Port:           ":3000",
		StoreTimeout:   5,
		CharacterLimit: testCharacterLimit,
		LogLimit:       testLogLimit,
	}
}

func testRepository(t *testing.T) *repository.CharacterRepository {
	t.Helper()

	cfg := testConfig()

	charRepo, errRepo := repository.New(cfg.Dsn, time.Duration(cfg.StoreTimeout)*time.Second)
	if errRepo != nil {
		t.Fatalf("Error creating test repository: %v", errRepo)
		return nil
	}

	if _, err := charRepo.DB.Exec("CREATE DATABASE IF NOT EXISTS test_schema"); err != nil {
		t.Fatalf("Error creating test database: %v", err)
		return nil
	}
	if _, err := charRepo.DB.Exec("USE test_schema"); err != nil {
		t.Fatalf("Error using test database: %v", err)
		return nil
	}

	if _, err := charRepo.DB.Exec(charactersTable); err != nil {
		t.Fatalf("Error creating characters table: %v", err)
		return nil
	}
	if _, err := charRepo.DB.Exec(characterLogsTable); err != nil {
		t.Fatalf("Error creating character_logs table: %v", err)
		return nil
	}

	for _, table := range []string{"characters", "character_logs"} {
		if _, err := charRepo.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			t.Fatalf("Error truncating table %s: %v", table, err)
		}
	}

	return charRepo
}

func testCleanup(t *testing.T, repo *repository.CharacterRepository) {
	t.Helper()

	for _, table := range []string{"characters", "character_logs"} {
		sql := fmt.Sprintf("TRUNCATE TABLE %s", table)
		if _, err := repo.DB.Exec(sql); err != nil {
			t.Logf("Error truncating table %s: %v", table, err)
		}
	}

	if err := repo.DB.Close(); err != nil {
		t.Logf("Error closing database connection: %v", err)
	}
}

func seedCharacters(t *testing.T, repo *repository.CharacterRepository) {
	t.Helper()

	insertCharacter := `
		INSERT INTO characters (name, role, level, overall, strength, dexterity, constitution, intelligence, wisdom, mentality, guild, date_saved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	insertLog := `
		INSERT INTO character_logs (character_name, level, overall, strength, dexterity, constitution, intelligence, wisdom, mentality, date_saved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	// Aria carries a deliberately stale overall column.
	if _, err := repo.DB.Exec(insertCharacter, "Aria", "Mage", 12, 999, 50, 50, 50, 50, 50, 50, "Dawnguard", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Error seeding character: %v", err)
	}
	if _, err := repo.DB.Exec(insertCharacter, "Bax", "Tank", 8, 150, 25, 25, 25, 25, 25, 25, "", time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Error seeding character: %v", err)
	}

	if _, err := repo.DB.Exec(insertLog, "Aria", 11, 0, 45, 45, 45, 45, 45, 45, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Error seeding log: %v", err)
	}
	if _, err := repo.DB.Exec(insertLog, "Aria", 12, 0, 50, 50, 50, 50, 50, 50, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Error seeding log: %v", err)
	}
}

func testServer(ss service.StatsServiceInterface, is service.InviteServiceInterface, ls service.LoggerInterface) *fiber.App {
	statsHandler := New(ss, is, ls, testCharacterLimit)

	app := fiber.New()

	app.Get("/characters", func(ctx *fiber.Ctx) error {
		// Single character with logs, or a bounded listing
		return statsHandler.GetCharacters(ctx)
	})

	app.Get("/invites", func(ctx *fiber.Ctx) error {
		return statsHandler.GetInvites(ctx)
	})

	app.Post("/invites", func(ctx *fiber.Ctx) error {
		return statsHandler.AddInvite(ctx)
	})

	app.Delete("/invites", func(ctx *fiber.Ctx) error {
		return statsHandler.ClearInvites(ctx)
	})

	return app
}

func testSendRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()

	var err error
	var bodyBytes []byte
	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("Error marshalling test body %v: %v", body, err)
		}
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	var resp *http.Response
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("Error sending test request for %s with body %s: %v", target, body, err)
	}

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Error decoding response body: %v", err)
	}
	return out
}

func assertStatus(t *testing.T, resp *http.Response, expected int, name string) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "Unexpected response HTTP status code for test: %s", name)
}

const charactersTable = `
create table if not exists characters
(
    id         int auto_increment
        primary key,
    name       varchar(64)              not null,
    role       varchar(16)              not null,
    level      int          default 0   not null,
    overall    int          default 0   not null,
    strength   int          default 0   not null,
    dexterity  int          default 0   not null,
    constitution int        default 0   not null,
    intelligence int        default 0   not null,
    wisdom     int          default 0   not null,
    mentality  int          default 0   not null,
    guild      varchar(64)  default ''  not null,
    date_saved datetime                 not null,
    constraint characters_name_uindex
        unique (name)
)
    charset = utf8mb4;
`

const characterLogsTable = `
create table if not exists character_logs
(
    id             int auto_increment
        primary key,
    character_name varchar(64)             not null,
    level          int          default 0  not null,
    overall        int          default 0  not null,
    strength       int          default 0  not null,
    dexterity      int          default 0  not null,
    constitution   int          default 0  not null,
    intelligence   int          default 0  not null,
    wisdom         int          default 0  not null,
    mentality      int          default 0  not null,
    date_saved     datetime                not null
)
    charset = utf8mb4;
`
