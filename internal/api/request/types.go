package request

// CreateVisitRequest is the request body for creating a visit
type CreateVisitRequest struct {
	VisitorFID   int64  `json:"visitor_fid"`
	HomeownerFID int64  `json:"homeowner_fid"`
	Message      string `json:"message"`
}

// DecideVisitRequest is the request body for deciding a visit. Both
// fields are optional pointers so the handler can tell "absent" from
// "false"; at least one must be set.
type DecideVisitRequest struct {
	Matched *bool `json:"matched,omitempty"`
	Seen    *bool `json:"seen,omitempty"`
}

// UpsertPlayerRequest is the request body for creating or updating a player
type UpsertPlayerRequest struct {
	FID           int64  `json:"fid"`
	WalletAddress string `json:"wallet_address,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
}
