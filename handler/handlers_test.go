package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"paperdoll_backend/model"
	"paperdoll_backend/service"
)

func testProfile() *model.CharacterProfile {
	char := model.Character{
		Name:         "Aria",
		Role:         "Mage",
		Level:        12,
		Strength:     50,
		Dexterity:    50,
		Constitution: 50,
		Intelligence: 50,
		Wisdom:       50,
		Mentality:    50,
		Guild:        "Dawnguard",
		DateSaved:    time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
	}
	char.Overall = char.AttributeSum()

	log := model.CharacterLog{
		Level: 11, Strength: 45, Dexterity: 45, Constitution: 45,
		Intelligence: 45, Wisdom: 45, Mentality: 45,
		DateSaved: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
	}
	log.Overall = log.AttributeSum()

	return &model.CharacterProfile{Character: char, Logs: []model.CharacterLog{log}}
}

func testListing() []model.Character {
	profile := testProfile()
	bax := model.Character{
		Name: "Bax", Role: "Tank", Level: 8,
		Strength: 25, Dexterity: 25, Constitution: 25,
		Intelligence: 25, Wisdom: 25, Mentality: 25,
		Guild: "none", DateSaved: time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
	}
	bax.Overall = bax.AttributeSum()
	return []model.Character{profile.Character, bax}
}

func TestGetCharacterByName(t *testing.T) {
	missing := uuid.NewString()

	tests := []struct {
		name           string
		mockFunc       func(*service.MockStatsService, *service.MockLoggerService)
		target         string
		expectedStatus int
		expectedBody   *model.BaseResponse
	}{
		{
			"Existing character is returned with its logs",
			func(stats *service.MockStatsService, log *service.MockLoggerService) {
				stats.On("GetByName", mock.Anything, "Aria").Return(testProfile(), nil)
			},
			"/characters?name=Aria",
			http.StatusOK,
			nil,
		},
		{
			"Unknown character yields a not-found message",
			func(stats *service.MockStatsService, log *service.MockLoggerService) {
				stats.On("GetByName", mock.Anything, missing).Return(nil, model.ErrNotFound)
			},
			"/characters?name=" + missing,
			http.StatusNotFound,
			&model.BaseResponse{
				Error:   true,
				Message: "Character not found",
			},
		},
		{
			"Unreachable store yields a generic failure",
			func(stats *service.MockStatsService, log *service.MockLoggerService) {
				stats.On("GetByName", mock.Anything, "Aria").Return(nil, fmt.Errorf("%w: dial tcp refused", model.ErrUnavailable))
				log.On("Exception", mock.AnythingOfType("string")).Return()
			},
			"/characters?name=Aria",
			http.StatusInternalServerError,
			&model.BaseResponse{
				Error:   true,
				Message: "The stats service is temporarily unavailable. Try again later.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := new(service.MockStatsService)
			log := new(service.MockLoggerService)

			tt.mockFunc(stats, log)

			app := testServer(stats, service.NewInviteService(), log)
			resp := testSendRequest(t, app, http.MethodGet, tt.target, nil)
			assertStatus(t, resp, tt.expectedStatus, tt.name)

			if tt.expectedBody != nil {
				body := decodeBody[model.BaseResponse](t, resp)
				assert.Equal(t, *tt.expectedBody, body, "Unexpected response body for test: %s", tt.name)
			} else {
				body := decodeBody[model.CharacterProfile](t, resp)
				assert.Equal(t, "Aria", body.Character.Name)
				assert.Equal(t, 300, body.Character.Overall)
				assert.Len(t, body.Logs, 1)
			}
		})
	}
}

func TestGetCharactersListing(t *testing.T) {
	stats := new(service.MockStatsService)
	log := new(service.MockLoggerService)
	stats.On("GetAll", mock.Anything, testCharacterLimit).Return(testListing(), nil)

	app := testServer(stats, service.NewInviteService(), log)
	resp := testSendRequest(t, app, http.MethodGet, "/characters", nil)
	assertStatus(t, resp, http.StatusOK, t.Name())

	body := decodeBody[[]model.Character](t, resp)
	assert.Len(t, body, 2)
	assert.Equal(t, "Aria", body[0].Name)
	stats.AssertExpectations(t)
}

func TestGetCharactersEmptyListing(t *testing.T) {
	stats := new(service.MockStatsService)
	log := new(service.MockLoggerService)
	stats.On("GetAll", mock.Anything, testCharacterLimit).Return([]model.Character{}, nil)

	app := testServer(stats, service.NewInviteService(), log)
	resp := testSendRequest(t, app, http.MethodGet, "/characters", nil)

	// True emptiness is served as 200 with an empty array, never a 404.
	assertStatus(t, resp, http.StatusOK, t.Name())
	body := decodeBody[[]model.Character](t, resp)
	assert.Empty(t, body)
	assert.NotNil(t, body)
}

type viewResponse struct {
	Characters []model.Character `json:"characters"`
	TotalPages int               `json:"total_pages"`
	Page       int               `json:"page"`
}

func TestGetCharactersWithViewParams(t *testing.T) {
	stats := new(service.MockStatsService)
	log := new(service.MockLoggerService)
	stats.On("GetAll", mock.Anything, testCharacterLimit).Return(testListing(), nil)

	app := testServer(stats, service.NewInviteService(), log)
	resp := testSendRequest(t, app, http.MethodGet, "/characters?sort=name&dir=asc&per_page=3&page=1", nil)
	assertStatus(t, resp, http.StatusOK, t.Name())

	body := decodeBody[viewResponse](t, resp)
	assert.Equal(t, 1, body.TotalPages)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, "Aria", body.Characters[0].Name)
	assert.Equal(t, "Bax", body.Characters[1].Name)
}

func TestGetCharactersSearchParam(t *testing.T) {
	stats := new(service.MockStatsService)
	log := new(service.MockLoggerService)
	stats.On("GetAll", mock.Anything, testCharacterLimit).Return(testListing(), nil)

	app := testServer(stats, service.NewInviteService(), log)
	resp := testSendRequest(t, app, http.MethodGet, "/characters?search=bax", nil)
	assertStatus(t, resp, http.StatusOK, t.Name())

	body := decodeBody[viewResponse](t, resp)
	assert.Len(t, body.Characters, 1)
	assert.Equal(t, "Bax", body.Characters[0].Name)
}

func TestGetCharactersBadViewParams(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"Non-numeric overall bound", "/characters?min_overall=abc"},
		{"Unknown sort key", "/characters?sort=charisma"},
		{"Unknown sort direction", "/characters?sort=name&dir=sideways"},
		{"Unsupported page size", "/characters?per_page=4"},
		{"Malformed date bound", "/characters?from=March-1st"},
		{"Zero page", "/characters?page=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := new(service.MockStatsService)
			log := new(service.MockLoggerService)
			stats.On("GetAll", mock.Anything, testCharacterLimit).Return(testListing(), nil)
			log.On("Exception", mock.AnythingOfType("string")).Return()

			app := testServer(stats, service.NewInviteService(), log)
			resp := testSendRequest(t, app, http.MethodGet, tt.target, nil)
			assertStatus(t, resp, http.StatusBadRequest, tt.name)

			body := decodeBody[model.BaseResponse](t, resp)
			assert.True(t, body.Error)
			assert.Equal(t, "One or more query parameters are malformed.", body.Message)
		})
	}
}

func TestInviteFlow(t *testing.T) {
	stats := new(service.MockStatsService)
	log := new(service.MockLoggerService)
	log.On("Exception", mock.AnythingOfType("string")).Return()

	app := testServer(stats, service.NewInviteService(), log)

	// Two characters is too short.
	resp := testSendRequest(t, app, http.MethodPost, "/invites", model.InviteAPI{Name: "Al"})
	assertStatus(t, resp, http.StatusBadRequest, "short name")
	rejected := decodeBody[model.InviteMutationResponse](t, resp)
	assert.False(t, rejected.Success)
	assert.Equal(t, "Invalid or duplicate name", rejected.Message)

	resp = testSendRequest(t, app, http.MethodPost, "/invites", model.InviteAPI{Name: "Alistair"})
	assertStatus(t, resp, http.StatusOK, "valid name")
	accepted := decodeBody[model.InviteMutationResponse](t, resp)
	assert.True(t, accepted.Success)
	assert.Equal(t, []string{"Alistair"}, accepted.Names)

	// The duplicate is rejected and the list stays unchanged.
	resp = testSendRequest(t, app, http.MethodPost, "/invites", model.InviteAPI{Name: "Alistair"})
	assertStatus(t, resp, http.StatusBadRequest, "duplicate name")

	resp = testSendRequest(t, app, http.MethodGet, "/invites", nil)
	assertStatus(t, resp, http.StatusOK, "list after duplicate")
	listed := decodeBody[model.InviteListResponse](t, resp)
	assert.Equal(t, []string{"Alistair"}, listed.Names)

	resp = testSendRequest(t, app, http.MethodDelete, "/invites", nil)
	assertStatus(t, resp, http.StatusOK, "clear")
	cleared := decodeBody[model.InviteMutationResponse](t, resp)
	assert.True(t, cleared.Success)
	assert.Equal(t, "Invite list cleared", cleared.Message)

	resp = testSendRequest(t, app, http.MethodGet, "/invites", nil)
	listed = decodeBody[model.InviteListResponse](t, resp)
	assert.Empty(t, listed.Names)
}

func TestGetCharactersFromStore(t *testing.T) {
	repo := testRepository(t)
	defer testCleanup(t, repo)
	seedCharacters(t, repo)

	log := new(service.MockLoggerService)
	statsService := service.NewStatsService(repo, testLogLimit)

	app := testServer(statsService, service.NewInviteService(), log)

	resp := testSendRequest(t, app, http.MethodGet, "/characters", nil)
	assertStatus(t, resp, http.StatusOK, "listing from store")
	listing := decodeBody[[]model.Character](t, resp)
	assert.Len(t, listing, 2)
	for _, char := range listing {
		assert.Equal(t, char.AttributeSum(), char.Overall, "overall must be recomputed, not read from the store")
	}

	resp = testSendRequest(t, app, http.MethodGet, "/characters?name=Aria", nil)
	assertStatus(t, resp, http.StatusOK, "by-name from store")
	profile := decodeBody[model.CharacterProfile](t, resp)
	assert.Equal(t, 300, profile.Character.Overall)
	assert.Len(t, profile.Logs, 2)
	assert.True(t, profile.Logs[0].DateSaved.After(profile.Logs[1].DateSaved), "logs are newest first")

	// Lookup is case-sensitive exact.
	resp = testSendRequest(t, app, http.MethodGet, "/characters?name=aria", nil)
	assertStatus(t, resp, http.StatusNotFound, "case-sensitive lookup")
}
