package ordering

import helper "programpro_backend/internals/helpers"

// Shared with the HTTP layer, which maps them to 404, 403 and 422.
var (
	ErrNotFound    = helper.ErrNotFound
	ErrForbidden   = helper.ErrForbidden
	ErrBatchFailed = helper.ErrBatchFailed
)
