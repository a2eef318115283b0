package errors

import "github.com/gofiber/fiber/v2"

// Error kinds surfaced to the request layer. Handlers map these onto user
// facing messages, the core never carries presentation text beyond the reason.
const (
	KindBadRequest       = "BAD_REQUEST"
	KindUnauthorized     = "UNAUTHORIZED"
	KindForbidden        = "FORBIDDEN"
	KindNotFound         = "NOT_FOUND"
	KindNotEligible      = "NOT_ELIGIBLE"
	KindAlreadyCancelled = "ALREADY_CANCELLED"
	KindAlreadyRated     = "ALREADY_RATED"
	KindInvalidRating    = "INVALID_RATING"
	KindCommentTooLong   = "COMMENT_TOO_LONG"
	KindInternal         = "INTERNAL_SERVER_ERROR"
)

type ErrorResp struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *ErrorResp) Error() string {
	return e.Message
}

func BadRequest(message string) error {
	return &ErrorResp{Code: fiber.StatusBadRequest, Kind: KindBadRequest, Message: message}
}

func UnauthorizedError(message string) error {
	return &ErrorResp{Code: fiber.StatusUnauthorized, Kind: KindUnauthorized, Message: message}
}

func ForbiddenError(message string) error {
	return &ErrorResp{Code: fiber.StatusForbidden, Kind: KindForbidden, Message: message}
}

func NotFound(message string) error {
	return &ErrorResp{Code: fiber.StatusNotFound, Kind: KindNotFound, Message: message}
}

// NotEligible signals that the timing or status precondition for an action is
// not met (window expired, wrong status). Distinct from the Already* kinds so
// the caller can tell "too late" apart from "already done".
func NotEligible(message string) error {
	return &ErrorResp{Code: fiber.StatusUnprocessableEntity, Kind: KindNotEligible, Message: message}
}

func AlreadyCancelled(message string) error {
	return &ErrorResp{Code: fiber.StatusConflict, Kind: KindAlreadyCancelled, Message: message}
}

func AlreadyRated(message string) error {
	return &ErrorResp{Code: fiber.StatusConflict, Kind: KindAlreadyRated, Message: message}
}

func InvalidRating(message string) error {
	return &ErrorResp{Code: fiber.StatusBadRequest, Kind: KindInvalidRating, Message: message}
}

func CommentTooLong(message string) error {
	return &ErrorResp{Code: fiber.StatusBadRequest, Kind: KindCommentTooLong, Message: message}
}

func InternalServerError(message string) error {
	return &ErrorResp{Code: fiber.StatusInternalServerError, Kind: KindInternal, Message: message}
}

// Kind extracts the error kind, or KindInternal for foreign errors.
func Kind(err error) string {
	if resp, ok := err.(*ErrorResp); ok {
		return resp.Kind
	}
	return KindInternal
}
