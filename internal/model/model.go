package model

import "strings"

type ClanRole string

const (
	ClanRoleNone     ClanRole = ""
	ClanRoleMember   ClanRole = "member"
	ClanRoleCoLeader ClanRole = "co-leader"
	ClanRoleLeader   ClanRole = "leader"
)

type SiteRole string

const (
	SiteRoleNone  SiteRole = ""
	SiteRoleAdmin SiteRole = "admin"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)

// User is created on first OAuth login and never deleted. Username and avatar
// are refreshed on every login; clan fields change with membership.
type User struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Avatar   string   `json:"avatar"`
	ClanID   string   `json:"clanId,omitempty"`
	ClanRole ClanRole `json:"clanRole,omitempty"`
	SiteRole SiteRole `json:"siteRole,omitempty"`
}

// Clan keeps its roster as a comma-joined list of display names. That
// duplicates User.Username rather than referencing rows; renames are not
// propagated.
type Clan struct {
	ClanID      string `json:"clanId"`
	ClanName    string `json:"clanName"`
	ClanTag     string `json:"clanTag"`
	ClanLogo    string `json:"clanLogo"`
	CaptainID   string `json:"captainId"`
	CaptainName string `json:"captainName"`
	Roster      string `json:"roster"`
}

// RosterMembers splits the comma-joined roster into trimmed names.
func (c *Clan) RosterMembers() []string {
	if c.Roster == "" {
		return nil
	}
	parts := strings.Split(c.Roster, ",")
	members := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			members = append(members, name)
		}
	}
	return members
}

// HasMember reports whether name is already on the roster.
func (c *Clan) HasMember(name string) bool {
	for _, m := range c.RosterMembers() {
		if m == name {
			return true
		}
	}
	return false
}

// AddMember appends name to the roster if absent. Returns true when the
// roster changed.
func (c *Clan) AddMember(name string) bool {
	if c.HasMember(name) {
		return false
	}
	if c.Roster == "" {
		c.Roster = name
	} else {
		c.Roster += "," + name
	}
	return true
}

type ClanRequest struct {
	RequestID string        `json:"requestId"`
	ClanID    string        `json:"clanId"`
	ClanName  string        `json:"clanName"`
	UserID    string        `json:"userId"`
	Username  string        `json:"username"`
	Status    RequestStatus `json:"status"`
	Timestamp string        `json:"timestamp"`
}

type Tournament struct {
	ScrimID    string `json:"scrimId"`
	Name       string `json:"name"`
	Game       string `json:"game"`
	Status     string `json:"status"`
	Slots      int    `json:"slots"`
	PrizePool  string `json:"prizePool"`
	Banner     string `json:"banner"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Rules      string `json:"rules"`
	PointTable string `json:"pointTable"`
}

// Registration is written once per clan per tournament and never changed.
type Registration struct {
	RegistrationID string `json:"registrationId"`
	ScrimID        string `json:"scrimId"`
	ClanID         string `json:"clanId"`
	ClanName       string `json:"clanName"`
	ClanTag        string `json:"clanTag"`
	ClanLogo       string `json:"clanLogo"`
	Roster         string `json:"roster"`
	Timestamp      string `json:"timestamp"`
}

type LeaderboardEntry struct {
	ClanID      string  `json:"clanId"`
	ClanName    string  `json:"clanName"`
	ClanTag     string  `json:"clanTag"`
	ClanLogo    string  `json:"clanLogo"`
	TotalPoints int     `json:"totalPoints"`
	AvgRank     float64 `json:"avgRank"`
}

type Partner struct {
	PartnerID   string `json:"partnerId"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type Message struct {
	MessageID string `json:"messageId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}
