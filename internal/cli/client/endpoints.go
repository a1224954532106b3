package client

const (
	// API version prefix
	apiV1Prefix = "/api/v1"

	// Authentication endpoints
	endpointLogin = apiV1Prefix + "/auth/login"

	// Session endpoints
	endpointSessions        = apiV1Prefix + "/sessions"
	endpointSessionByID     = apiV1Prefix + "/sessions/%s"
	endpointSessionMessages = apiV1Prefix + "/sessions/%s/messages"
	endpointSessionPDF      = apiV1Prefix + "/sessions/%s/pdf"

	// Message endpoints
	endpointMessages = apiV1Prefix + "/messages"

	// Bookmark endpoints
	endpointBookmarks    = apiV1Prefix + "/bookmarks"
	endpointBookmarkByID = apiV1Prefix + "/bookmarks/%s"
)
