// Package api implements the generic action endpoint. A discriminator query
// parameter selects exactly one handler from a static table; each entry
// declares whether it needs authentication and which role predicate applies.
// The router never retries, caches or reorders; store calls inside a handler
// run strictly sequentially.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/scrimhub/scrimhub/internal/auth"
	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/service"
	"github.com/scrimhub/scrimhub/internal/store"
	"github.com/scrimhub/scrimhub/internal/token"
)

// Notifier relays a tournament-created event to the chat bot. Failures are a
// secondary side effect: logged, never propagated.
type Notifier interface {
	TournamentCreated(ctx context.Context, t *model.Tournament) error
}

// Mailer relays a stored contact-form message over SMTP.
type Mailer interface {
	Send(ctx context.Context, m *model.Message) error
}

type handlerFunc func(r *http.Request, claims *token.Claims) (any, error)

type action struct {
	handle handlerFunc
	authed bool
	role   auth.RolePredicate
}

type Server struct {
	gate        *auth.Gate
	users       *service.UserService
	clans       *service.ClanService
	tournaments *service.TournamentService
	partners    *store.PartnerStore
	messages    *store.MessageStore
	notifier    Notifier
	mailer      Mailer

	actions map[string]action
}

func NewServer(
	gate *auth.Gate,
	users *service.UserService,
	clans *service.ClanService,
	tournaments *service.TournamentService,
	partners *store.PartnerStore,
	messages *store.MessageStore,
	notifier Notifier,
	mailer Mailer,
) *Server {
	s := &Server{
		gate:        gate,
		users:       users,
		clans:       clans,
		tournaments: tournaments,
		partners:    partners,
		messages:    messages,
		notifier:    notifier,
		mailer:      mailer,
	}

	s.actions = map[string]action{
		// public reads
		"getTournaments":      {handle: s.getTournaments},
		"getTournamentDetail": {handle: s.getTournamentDetail},
		"getClans":            {handle: s.getClans},
		"getClanDetail":       {handle: s.getClanDetail},
		"getLeaderboard":      {handle: s.getLeaderboard},
		"getPartners":         {handle: s.getPartners},
		"submitMessage":       {handle: s.submitMessage},

		// authenticated user actions
		"getUser":               {handle: s.getUser, authed: true},
		"getUserProfile":        {handle: s.getUserProfile, authed: true},
		"createClan":            {handle: s.createClan, authed: true},
		"createClanRequest":     {handle: s.createClanRequest, authed: true},
		"registerForTournament": {handle: s.registerForTournament, authed: true, role: auth.ClanLeadership},
		"manageClanRequest":     {handle: s.manageClanRequest, authed: true, role: auth.ClanLeader},

		// admin actions
		"addTournament":      {handle: s.addTournament, authed: true, role: auth.AdminOnly},
		"updateTournament":   {handle: s.updateTournament, authed: true, role: auth.AdminOnly},
		"deleteTournament":   {handle: s.deleteTournament, authed: true, role: auth.AdminOnly},
		"getUsers":           {handle: s.getUsers, authed: true, role: auth.AdminOnly},
		"updateUserRole":     {handle: s.updateUserRole, authed: true, role: auth.AdminOnly},
		"getClanRequests":    {handle: s.getClanRequests, authed: true, role: auth.AdminOnly},
		"processClanRequest": {handle: s.processClanRequest, authed: true, role: auth.AdminOnly},
		"getRegistrations":   {handle: s.getRegistrations, authed: true, role: auth.AdminOnly},
		"getMessages":        {handle: s.getMessages, authed: true, role: auth.AdminOnly},
		"addPartner":         {handle: s.addPartner, authed: true, role: auth.AdminOnly},
		"updatePartner":      {handle: s.updatePartner, authed: true, role: auth.AdminOnly},
		"deletePartner":      {handle: s.deletePartner, authed: true, role: auth.AdminOnly},
		"updateLeaderboard":  {handle: s.updateLeaderboard, authed: true, role: auth.AdminOnly},
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("action")
	act, ok := s.actions[name]
	if !ok {
		httputil.WriteError(w, fmt.Errorf("%w: unknown action %q", httputil.ErrNotFound, name))
		return
	}

	var claims *token.Claims
	if act.authed {
		var err error
		claims, err = s.gate.Authenticate(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		if act.role != nil {
			if err := act.role(claims); err != nil {
				httputil.WriteError(w, err)
				return
			}
		}
	}

	out, err := act.handle(r, claims)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body", httputil.ErrBadRequest)
	}
	return nil
}

// fieldsFromPayload turns a decoded JSON object into column values, keeping
// only the allowed columns so key columns cannot be overwritten.
func fieldsFromPayload(payload map[string]any, allowed ...string) map[string]string {
	fields := make(map[string]string)
	for _, col := range allowed {
		v, ok := payload[col]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			fields[col] = val
		case float64:
			fields[col] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			fields[col] = strconv.FormatBool(val)
		case nil:
			fields[col] = ""
		}
	}
	return fields
}
