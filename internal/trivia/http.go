package trivia

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers exposes the question bank and quiz over REST.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for trivia endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts the trivia routes on mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{categoryID}/questions", h.ListCategoryQuestions)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateOrSearchQuestions)
	mux.HandleFunc("DELETE /questions/{questionID}", h.DeleteQuestion)
	mux.HandleFunc("POST /quizzes", h.NextQuizQuestion)
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, categoriesResponse{
		Success:         true,
		Categories:      categories,
		TotalCategories: len(categories),
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.service.ListQuestions(r.Context(), page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, questionsResponse{
		Success:        true,
		Questions:      result.Questions,
		Categories:     result.Categories,
		TotalQuestions: result.Total,
	})
}

// CreateOrSearchQuestions handles POST /questions. A non-empty searchTerm
// selects search; any other body creates a question.
func (h *HTTPHandlers) CreateOrSearchQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req questionMutationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, newError(KindUnprocessable, "decode question payload", err))
		return
	}

	if req.isSearch() {
		h.searchQuestions(w, r, *req.SearchTerm, page)
		return
	}
	h.createQuestion(w, r, req.createInput(), page)
}

func (h *HTTPHandlers) searchQuestions(w http.ResponseWriter, r *http.Request, term string, page int) {
	result, err := h.service.SearchQuestions(r.Context(), term, page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, searchResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	})
}

func (h *HTTPHandlers) createQuestion(w http.ResponseWriter, r *http.Request, in CreateQuestionInput, page int) {
	result, err := h.service.CreateQuestion(r.Context(), in, page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, createResponse{
		Success:          true,
		CreatedQuestions: result.ID,
		Questions:        result.Questions,
		TotalQuestions:   result.Total,
	})
}

// DeleteQuestion handles DELETE /questions/{questionID}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "questionID")
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, deleteResponse{
		Success:         true,
		DeletedQuestion: id,
		Message:         "successfully deleted",
	})
}

// ListCategoryQuestions handles GET /categories/{categoryID}/questions
func (h *HTTPHandlers) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryID")
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	result, err := h.service.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       result.Questions,
		CurrentCategory: result.CurrentCategory,
		TotalQuestions:  result.Total,
	})
}

// NextQuizQuestion handles POST /quizzes. An unreadable body or a missing
// quiz_category answers 404, which quiz clients already treat as "no quiz".
func (h *HTTPHandlers) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, newError(KindNotFound, "decode quiz payload", err))
		return
	}
	if req.QuizCategory == nil {
		httperrors.RespondNotFound(w)
		return
	}
	categoryID, err := req.QuizCategory.categoryID()
	if err != nil {
		h.respondError(w, r, newError(KindNotFound, "decode quiz category", err))
		return
	}

	question, err := h.service.NextQuizQuestion(r.Context(), QuizRequest{
		CategoryID:        categoryID,
		PreviousQuestions: req.PreviousQuestions,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, quizResponse{
		Success:  true,
		Question: question,
	})
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// respondError maps a classified error to its status. Internal failures are
// logged with the request's logger; the client only sees the fixed message.
func (h *HTTPHandlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger, ok := logging.Lookup(r.Context())
	if !ok {
		logger = h.logger
	}

	switch KindOf(err) {
	case KindBadRequest:
		logger.Debug().Err(err).Msg("bad request")
		httperrors.RespondBadRequest(w)
	case KindNotFound:
		logger.Debug().Err(err).Msg("resource not found")
		httperrors.RespondNotFound(w)
	case KindUnprocessable:
		logger.Warn().Err(err).Msg("unprocessable request")
		httperrors.RespondUnprocessable(w)
	default:
		logger.Error().Err(err).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

// decodeJSON decodes exactly one JSON value from the request body.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// pathID parses an integer path segment; anything else is treated as an
// unmatched route.
func pathID(r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 32)
	if err != nil || id < 0 {
		return 0, false
	}
	return int32(id), true
}

type questionMutationRequest struct {
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Category   *FlexInt `json:"category"`
	Difficulty *FlexInt `json:"difficulty"`
	SearchTerm *string  `json:"searchTerm"`
}

func (req questionMutationRequest) isSearch() bool {
	return req.SearchTerm != nil && *req.SearchTerm != ""
}

func (req questionMutationRequest) createInput() CreateQuestionInput {
	return CreateQuestionInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category.Int32Ptr(),
		Difficulty: req.Difficulty.Int32Ptr(),
	}
}

type quizRequest struct {
	PreviousQuestions []int32       `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

type quizCategory struct {
	ID json.RawMessage `json:"id"`
}

// categoryID requires the id key to be present. An explicit null selects
// every category, like 0.
func (c quizCategory) categoryID() (int32, error) {
	if len(c.ID) == 0 {
		return 0, errors.New("quiz_category.id missing")
	}
	var id FlexInt
	if err := json.Unmarshal(c.ID, &id); err != nil {
		return 0, err
	}
	return int32(id), nil
}

type categoriesResponse struct {
	Success         bool        `json:"success"`
	Categories      CategoryMap `json:"categories"`
	TotalCategories int         `json:"totalCategories"`
}

type questionsResponse struct {
	Success        bool                `json:"success"`
	Questions      []FormattedQuestion `json:"questions"`
	Categories     CategoryMap         `json:"categories"`
	TotalQuestions int                 `json:"totalQuestions"`
}

type searchResponse struct {
	Success        bool                `json:"success"`
	Questions      []FormattedQuestion `json:"questions"`
	TotalQuestions int                 `json:"totalQuestions"`
}

type createResponse struct {
	Success          bool                `json:"success"`
	CreatedQuestions int32               `json:"created_questions"`
	Questions        []FormattedQuestion `json:"questions"`
	TotalQuestions   int                 `json:"total_questions"`
}

type deleteResponse struct {
	Success         bool   `json:"success"`
	DeletedQuestion int32  `json:"deletedQuestion"`
	Message         string `json:"message"`
}

type categoryQuestionsResponse struct {
	Success         bool                `json:"success"`
	Questions       []FormattedQuestion `json:"questions"`
	CurrentCategory string              `json:"currentCategory"`
	TotalQuestions  int                 `json:"totalQuestions"`
}

type quizResponse struct {
	Success  bool               `json:"success"`
	Question *FormattedQuestion `json:"question"`
}
