package subscribe

import (
	"encoding/json"
	"io"
	"net/http"

	"waitlist/internal/core/services"
	joinwaitlist "waitlist/internal/core/services/join_waitlist"
	"waitlist/internal/http/handlers/response"
)

const (
	invalidEmailMessage = "A valid email is required"
	hiddenStoreMessage  = "Could not save your signup."
	storeErrorCode      = "store_error"
	maxBodyBytes        = 4 << 10
)

type Handler struct {
	service         services.Service[joinwaitlist.Input, joinwaitlist.Result]
	hideStoreErrors bool
}

// New returns the signup endpoint. With hideStoreErrors the store's own
// message is kept out of responses.
func New(
	service services.Service[joinwaitlist.Input, joinwaitlist.Result],
	hideStoreErrors bool,
) *Handler {
	return &Handler{service: service, hideStoreErrors: hideStoreErrors}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.RenderMethodNotAllowed(rw)
		return
	}

	input := Input{}
	if err := input.FromJSON(http.MaxBytesReader(rw, r.Body, maxBodyBytes)); err != nil {
		response.RenderError(rw, invalidEmailMessage, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(r.Context(), joinwaitlist.Input{Email: input.Email})
	switch joinwaitlist.OutcomeOf(err) {
	case joinwaitlist.OutcomeValidationError:
		response.RenderError(rw, invalidEmailMessage, http.StatusBadRequest)
	case joinwaitlist.OutcomeStoreError:
		if h.hideStoreErrors {
			response.RenderErrorWithDetails(rw, hiddenStoreMessage, storeErrorCode, http.StatusInternalServerError)
			return
		}
		response.RenderErrorWithDetails(rw, err.Error(), "", http.StatusInternalServerError)
	default:
		response.Render(rw, successResponse{Success: true}, http.StatusOK)
	}
}
