package model

// Team is the workspace singleton.
type Team struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Domain      string         `json:"domain"`
	EmailDomain string         `json:"email_domain"`
	Plan        string         `json:"plan"`
	Prefs       map[string]any `json:"prefs"`
}

// Subteams is the subteam section of the session snapshot: all known
// user groups plus the ids the authenticated user belongs to.
type Subteams struct {
	All  []*UserGroup `json:"all"`
	Self []string     `json:"self"`
}

// Snapshot is the bulk session payload returned by the handshake. URL
// is the real-time transport endpoint to connect to afterwards.
type Snapshot struct {
	OK       bool                `json:"ok"`
	Error    string              `json:"error"`
	URL      string              `json:"url"`
	Team     *Team               `json:"team"`
	Self     *User               `json:"self"`
	DND      *DoNotDisturbStatus `json:"dnd"`
	Users    []*User             `json:"users"`
	Channels []*Channel          `json:"channels"`
	Groups   []*Channel          `json:"groups"`
	MPIMs    []*Channel          `json:"mpims"`
	IMs      []*Channel          `json:"ims"`
	Bots     []*Bot              `json:"bots"`
	Subteams Subteams            `json:"subteams"`
}
