package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"devdeck/internal/card"
	"devdeck/internal/card/handler/mocks"
	"devdeck/internal/platform/middleware"
	id "devdeck/pkg/domain"
	dErrors "devdeck/pkg/domain-errors"
	"devdeck/pkg/testutil"
)

type CardHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *CardHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestCardHandlerSuite(t *testing.T) {
	suite.Run(t, new(CardHandlerSuite))
}

func newTestHandler(t *testing.T) (*Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, logger, nil, nil)
	r := chi.NewRouter()
	handler.Register(r)
	return handler, mockService
}

// withURLParam injects a chi route parameter for direct handler invocation.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func (s *CardHandlerSuite) TestHandleCreateCard() {
	handler, mockService := newTestHandler(s.T())
	caller := id.NewAccountID()

	mockService.EXPECT().Create(
		gomock.Any(),
		caller,
		card.NewCardInput{
			Name:              "Ada",
			Title:             "Engineer",
			ImageURL:          "https://img.example.com/a.png",
			Technologies:      "Go",
			Portfolio:         "https://example.com",
			Contact:           "ada@example.com",
			YearsOfExperience: 7,
		},
		int64(100),
	).Return(id.CardID(1), nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/cards", CreateCardRequest{
		Name:              "Ada",
		Title:             "Engineer",
		ImageURL:          "https://img.example.com/a.png",
		Technologies:      "Go",
		Portfolio:         "https://example.com",
		Contact:           "ada@example.com",
		YearsOfExperience: 7,
		Payment:           100,
	})
	req = testutil.WithAccountID(req, caller)

	w := httptest.NewRecorder()
	handler.handleCreateCard(w, req)

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp CreateCardResponse
	testutil.DecodeJSON(s.T(), w, &resp)
	assert.Equal(s.T(), id.CardID(1), resp.ID)
}

func (s *CardHandlerSuite) TestHandleCreateCard_WrongFee() {
	handler, mockService := newTestHandler(s.T())
	caller := id.NewAccountID()

	mockService.EXPECT().Create(gomock.Any(), caller, gomock.Any(), int64(1)).
		Return(id.CardID(0), dErrors.New(dErrors.CodeInsufficientFunds, "card creation requires the exact fee"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/cards", CreateCardRequest{Name: "Ada", Payment: 1})
	req = testutil.WithAccountID(req, caller)

	w := httptest.NewRecorder()
	handler.handleCreateCard(w, req)

	assert.Equal(s.T(), http.StatusPaymentRequired, w.Code)
	var resp map[string]string
	testutil.DecodeJSON(s.T(), w, &resp)
	assert.Equal(s.T(), "insufficient_funds", resp["error"])
}

func (s *CardHandlerSuite) TestHandleCreateCard_MissingAuthContext() {
	handler, _ := newTestHandler(s.T())

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/cards", CreateCardRequest{Name: "Ada", Payment: 100})

	w := httptest.NewRecorder()
	handler.handleCreateCard(w, req)

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
}

func (s *CardHandlerSuite) TestHandleGetCard() {
	handler, mockService := newTestHandler(s.T())
	owner := id.NewAccountID()

	desc := "hello"
	mockService.EXPECT().Get(gomock.Any(), id.CardID(7)).Return(card.View{
		ID:          7,
		Owner:       owner,
		Name:        "Ada",
		Title:       "Engineer",
		Description: &desc,
		OpenToWork:  true,
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/cards/7", nil), "id", "7")

	w := httptest.NewRecorder()
	handler.handleGetCard(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	testutil.DecodeJSON(s.T(), w, &resp)
	assert.Equal(s.T(), float64(7), resp["id"])
	assert.Equal(s.T(), owner.String(), resp["owner"])
	assert.Equal(s.T(), "hello", resp["description"])
	assert.Equal(s.T(), true, resp["open_to_work"])
}

func (s *CardHandlerSuite) TestHandleGetCard_NotFound() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().Get(gomock.Any(), id.CardID(99)).
		Return(card.View{}, dErrors.New(dErrors.CodeNotFound, "card not found"))

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/cards/99", nil), "id", "99")

	w := httptest.NewRecorder()
	handler.handleGetCard(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *CardHandlerSuite) TestHandleGetCard_InvalidID() {
	handler, _ := newTestHandler(s.T())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/cards/abc", nil), "id", "abc")

	w := httptest.NewRecorder()
	handler.handleGetCard(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *CardHandlerSuite) TestHandleUpdateDescription() {
	handler, mockService := newTestHandler(s.T())
	caller := id.NewAccountID()

	mockService.EXPECT().UpdateDescription(gomock.Any(), caller, id.CardID(7), "new text").Return(nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/v1/cards/7/description", UpdateDescriptionRequest{Description: "new text"})
	req = testutil.WithAccountID(withURLParam(req, "id", "7"), caller)

	w := httptest.NewRecorder()
	handler.handleUpdateDescription(w, req)

	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *CardHandlerSuite) TestHandleUpdatePortfolio_NotOwner() {
	handler, mockService := newTestHandler(s.T())
	caller := id.NewAccountID()

	mockService.EXPECT().UpdatePortfolio(gomock.Any(), caller, id.CardID(7), "https://example.com").
		Return(dErrors.New(dErrors.CodeNotOwner, "only the card owner may modify it"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/v1/cards/7/portfolio", UpdatePortfolioRequest{Portfolio: "https://example.com"})
	req = testutil.WithAccountID(withURLParam(req, "id", "7"), caller)

	w := httptest.NewRecorder()
	handler.handleUpdatePortfolio(w, req)

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	var resp map[string]string
	testutil.DecodeJSON(s.T(), w, &resp)
	assert.Equal(s.T(), "not_owner", resp["error"])
}

func (s *CardHandlerSuite) TestHandleDeactivate() {
	handler, mockService := newTestHandler(s.T())
	caller := id.NewAccountID()

	mockService.EXPECT().Deactivate(gomock.Any(), caller, id.CardID(7)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/cards/7/deactivate", nil)
	req = testutil.WithAccountID(withURLParam(req, "id", "7"), caller)

	w := httptest.NewRecorder()
	handler.handleDeactivate(w, req)

	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

// TestRoutesRequireAuth exercises the mounted router: a mutation without a
// token never reaches the service.
func (s *CardHandlerSuite) TestRoutesRequireAuth() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, logger, nil, rejectAllValidator{})
	r := chi.NewRouter()
	handler.Register(r)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/cards", CreateCardRequest{Name: "Ada", Payment: 100})
	req.Header.Set("Authorization", "Bearer bogus")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

type rejectAllValidator struct{}

func (rejectAllValidator) ValidateToken(string) (*middleware.JWTClaims, error) {
	return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
}
