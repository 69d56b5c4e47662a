package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"paperdoll_backend/model"
	"paperdoll_backend/service"
	"paperdoll_backend/view"
)

type StatsHandler struct {
	Stats          service.StatsServiceInterface
	Invite         service.InviteServiceInterface
	Logger         service.LoggerInterface
	CharacterLimit int
}

func New(statsService service.StatsServiceInterface, inviteService service.InviteServiceInterface, logService service.LoggerInterface, characterLimit int) *StatsHandler {
	return &StatsHandler{
		Stats:          statsService,
		Invite:         inviteService,
		Logger:         logService,
		CharacterLimit: characterLimit,
	}
}

// GetCharacters serves both query shapes: ?name= for a single character with
// its recent history, otherwise a bounded listing. The listing optionally
// runs through the view pipeline when stage parameters are present.
func (h *StatsHandler) GetCharacters(ctx *fiber.Ctx) error {
	br := model.BaseResponse{
		Error:   true,
		Message: model.ErrorMsg(model.ErrUnavailable),
	}

	if name := ctx.Query("name"); name != "" {
		profile, err := h.Stats.GetByName(ctx.UserContext(), name)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				br.Message = model.ErrorMsg(model.ErrNotFound)
				return ctx.Status(http.StatusNotFound).JSON(br)
			}
			h.Logger.Exception(fmt.Sprintf("GetCharacters(): error fetching character %s: %v", name, err))
			return ctx.Status(http.StatusInternalServerError).JSON(br)
		}

		return ctx.Status(http.StatusOK).JSON(profile)
	}

	characters, err := h.Stats.GetAll(ctx.UserContext(), h.CharacterLimit)
	if err != nil {
		h.Logger.Exception(fmt.Sprintf("GetCharacters(): error fetching characters: %v", err))
		return ctx.Status(http.StatusInternalServerError).JSON(br)
	}

	if !hasViewParams(ctx) {
		// An empty store is a valid outcome, served as an empty array.
		return ctx.Status(http.StatusOK).JSON(characters)
	}

	state, err := parseViewState(ctx)
	if err != nil {
		h.Logger.Exception(fmt.Sprintf("GetCharacters(): bad view parameters: %v", err))
		br.Message = model.ErrorMsg(model.ErrBadRequest)
		return ctx.Status(http.StatusBadRequest).JSON(br)
	}

	result := state.Apply(characters)

	return ctx.Status(http.StatusOK).JSON(fiber.Map{
		"characters":  result.Characters,
		"total_pages": result.TotalPages,
		"page":        result.Page,
	})
}

var viewParamKeys = []string{"search", "guild", "role", "min_overall", "max_overall", "from", "to", "sort", "dir", "page", "per_page"}

func hasViewParams(ctx *fiber.Ctx) bool {
	for _, key := range viewParamKeys {
		if ctx.Query(key) != "" {
			return true
		}
	}
	return false
}

// parseViewState maps the stage query parameters onto a fresh view state.
// Any malformed value surfaces as model.ErrBadRequest.
func parseViewState(ctx *fiber.Ctx) (*view.State, error) {
	state := view.NewState()

	state.Query = ctx.Query("search")
	state.Filter.Guild = ctx.Query("guild")
	state.Filter.Role = ctx.Query("role")

	var err error
	if state.Filter.MinOverall, err = optionalInt(ctx, "min_overall"); err != nil {
		return nil, err
	}
	if state.Filter.MaxOverall, err = optionalInt(ctx, "max_overall"); err != nil {
		return nil, err
	}
	if state.Filter.From, err = optionalDate(ctx, "from"); err != nil {
		return nil, err
	}
	if state.Filter.To, err = optionalDate(ctx, "to"); err != nil {
		return nil, err
	}

	if key := ctx.Query("sort"); key != "" {
		if !view.ValidSortKey(key) {
			return nil, fmt.Errorf("%w: unknown sort key %q", model.ErrBadRequest, key)
		}
		state.SortKey = view.SortKey(key)
	}

	switch dir := ctx.Query("dir"); dir {
	case "", string(view.Descending):
	case string(view.Ascending):
		state.SortDir = view.Ascending
	default:
		return nil, fmt.Errorf("%w: unknown sort direction %q", model.ErrBadRequest, dir)
	}

	if raw := ctx.Query("per_page"); raw != "" {
		perPage, errConv := strconv.Atoi(raw)
		if errConv != nil || !view.ValidPerPage(perPage) {
			return nil, fmt.Errorf("%w: per_page must be one of 3, 5, 10", model.ErrBadRequest)
		}
		state.PerPage = perPage
	}

	if raw := ctx.Query("page"); raw != "" {
		page, errConv := strconv.Atoi(raw)
		if errConv != nil || page < 1 {
			return nil, fmt.Errorf("%w: page must be a positive number", model.ErrBadRequest)
		}
		state.Page = page
	}

	return state, nil
}

func optionalInt(ctx *fiber.Ctx, key string) (*int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a number", model.ErrBadRequest, key)
	}
	return &value, nil
}

func optionalDate(ctx *fiber.Ctx, key string) (*time.Time, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a date", model.ErrBadRequest, key)
	}
	return &value, nil
}

func (h *StatsHandler) GetInvites(ctx *fiber.Ctx) error {
	return ctx.Status(http.StatusOK).JSON(model.InviteListResponse{
		Names: h.Invite.List(),
	})
}

func (h *StatsHandler) AddInvite(ctx *fiber.Ctx) error {
	var inviteData model.InviteAPI

	if err := ctx.BodyParser(&inviteData); err != nil {
		h.Logger.Exception(fmt.Sprintf("AddInvite(): error parsing body request: %v", err))
		return ctx.Status(http.StatusBadRequest).JSON(model.InviteMutationResponse{
			Success: false,
			Message: model.ErrorMsg(model.ErrValidation),
		})
	}

	names, err := h.Invite.Add(inviteData.Name)
	if err != nil {
		h.Logger.Exception(fmt.Sprintf("AddInvite(): rejected invite name %q: %v", inviteData.Name, err))
		return ctx.Status(http.StatusBadRequest).JSON(model.InviteMutationResponse{
			Success: false,
			Message: model.ErrorMsg(err),
		})
	}

	return ctx.Status(http.StatusOK).JSON(model.InviteMutationResponse{
		Success: true,
		Names:   names,
	})
}

func (h *StatsHandler) ClearInvites(ctx *fiber.Ctx) error {
	h.Invite.Clear()

	return ctx.Status(http.StatusOK).JSON(model.InviteMutationResponse{
		Success: true,
		Message: "Invite list cleared",
	})
}
