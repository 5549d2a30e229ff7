package mirror

import (
	"github.com/launchsoft/slackmirror/internal/event"
	"github.com/launchsoft/slackmirror/internal/model"
)

// PrefChange is the fanout payload for preference updates.
type PrefChange struct {
	Name  string
	Value any
}

// PresenceNotice pairs a user with their new presence value.
type PresenceNotice struct {
	User     *model.User
	Presence string
}

// DNDNotice pairs a user with their new do-not-disturb status.
type DNDNotice struct {
	User   *model.User
	Status *model.DoNotDisturbStatus
}

func (m *Mirror) preferenceChanged(env *event.Envelope) {
	if env.Name == "" {
		return
	}

	m.mu.Lock()
	if m.self == nil {
		m.mu.Unlock()
		return
	}
	if m.self.Prefs == nil {
		m.self.Prefs = make(map[string]any)
	}
	m.self.Prefs[env.Name] = env.Value
	m.mu.Unlock()

	m.publish("user.preference_changed", PrefChange{Name: env.Name, Value: env.Value})
}

// userChanged replaces the stored user wholesale except for previously
// known preferences, which the event payload never carries.
func (m *Mirror) userChanged(env *event.Envelope) {
	if env.User == nil || env.User.ID == "" {
		return
	}
	u := &env.User.User

	m.mu.Lock()
	if old := m.users[u.ID]; old != nil {
		u.Prefs = old.Prefs
	}
	m.users[u.ID] = u
	m.mu.Unlock()

	m.publish("user.changed", u)
}

func (m *Mirror) presenceChanged(env *event.Envelope) {
	if env.User == nil || env.User.ID == "" || env.Presence == "" {
		return
	}

	m.mu.Lock()
	u := m.users[env.User.ID]
	if u == nil {
		m.mu.Unlock()
		return
	}
	u.Presence = env.Presence
	m.mu.Unlock()

	m.publish("user.presence_changed", PresenceNotice{User: u, Presence: env.Presence})
}

// manualPresenceChanged applies to the authenticated user, the only
// user whose presence is authoritative locally.
func (m *Mirror) manualPresenceChanged(env *event.Envelope) {
	if env.Presence == "" {
		return
	}

	m.mu.Lock()
	u := m.self
	if u == nil {
		m.mu.Unlock()
		return
	}
	u.Presence = env.Presence
	m.mu.Unlock()

	m.publish("user.manual_presence_changed", PresenceNotice{User: u, Presence: env.Presence})
}

func (m *Mirror) teamJoined(env *event.Envelope) {
	if env.User == nil || env.User.ID == "" {
		return
	}
	u := &env.User.User

	m.mu.Lock()
	m.users[u.ID] = u
	m.mu.Unlock()

	m.publish("team.member_joined", u)
}

func (m *Mirror) teamPlanChanged(env *event.Envelope) {
	if env.Plan == "" {
		return
	}

	m.mu.Lock()
	t := m.team
	if t == nil {
		m.mu.Unlock()
		return
	}
	t.Plan = env.Plan
	m.mu.Unlock()

	m.publish("team.plan_changed", t)
}

func (m *Mirror) teamPrefChanged(env *event.Envelope) {
	if env.Name == "" {
		return
	}

	m.mu.Lock()
	t := m.team
	if t == nil {
		m.mu.Unlock()
		return
	}
	if t.Prefs == nil {
		t.Prefs = make(map[string]any)
	}
	t.Prefs[env.Name] = env.Value
	m.mu.Unlock()

	m.publish("team.pref_changed", PrefChange{Name: env.Name, Value: env.Value})
}

func (m *Mirror) teamRenamed(env *event.Envelope) {
	if env.Name == "" {
		return
	}

	m.mu.Lock()
	t := m.team
	if t == nil {
		m.mu.Unlock()
		return
	}
	t.Name = env.Name
	m.mu.Unlock()

	m.publish("team.renamed", t)
}

func (m *Mirror) teamDomainChanged(env *event.Envelope) {
	if env.Domain == "" {
		return
	}

	m.mu.Lock()
	t := m.team
	if t == nil {
		m.mu.Unlock()
		return
	}
	t.Domain = env.Domain
	m.mu.Unlock()

	m.publish("team.domain_changed", t)
}

func (m *Mirror) emailDomainChanged(env *event.Envelope) {
	if env.EmailDom == "" {
		return
	}

	m.mu.Lock()
	t := m.team
	if t == nil {
		m.mu.Unlock()
		return
	}
	t.EmailDomain = env.EmailDom
	m.mu.Unlock()

	m.publish("team.email_domain_changed", t)
}

// emojiChanged carries no entity payload; the mirror has nothing to
// mutate, observers refetch the emoji list themselves.
func (m *Mirror) emojiChanged(env *event.Envelope) {
	m.publish("team.emoji_changed", nil)
}

func (m *Mirror) botChanged(env *event.Envelope) {
	if env.Bot == nil || env.Bot.ID == "" {
		return
	}

	m.mu.Lock()
	m.bots[env.Bot.ID] = env.Bot
	m.mu.Unlock()

	m.publish("bot.changed", env.Bot)
}

func (m *Mirror) subteamUpdated(env *event.Envelope) {
	if env.Subteam == nil || env.Subteam.ID == "" {
		return
	}

	m.mu.Lock()
	m.groups[env.Subteam.ID] = env.Subteam
	m.mu.Unlock()

	m.publish("subteam.updated", env.Subteam)
}

func (m *Mirror) subteamSelfAdded(env *event.Envelope) {
	if env.SubteamID == "" {
		return
	}

	m.mu.Lock()
	if m.self == nil {
		m.mu.Unlock()
		return
	}
	if m.self.Subteams == nil {
		m.self.Subteams = make(map[string]string)
	}
	m.self.Subteams[env.SubteamID] = env.SubteamID
	m.mu.Unlock()

	m.publish("subteam.self_added", env.SubteamID)
}

func (m *Mirror) subteamSelfRemoved(env *event.Envelope) {
	if env.SubteamID == "" {
		return
	}

	m.mu.Lock()
	if m.self == nil {
		m.mu.Unlock()
		return
	}
	delete(m.self.Subteams, env.SubteamID)
	m.mu.Unlock()

	m.publish("subteam.self_removed", env.SubteamID)
}

func (m *Mirror) dndUpdated(env *event.Envelope) {
	if env.DNDStatus == nil {
		return
	}

	m.mu.Lock()
	u := m.self
	if u == nil {
		m.mu.Unlock()
		return
	}
	u.DoNotDisturb = env.DNDStatus
	m.mu.Unlock()

	m.publish("dnd.updated", DNDNotice{User: u, Status: env.DNDStatus})
}

func (m *Mirror) dndUserUpdated(env *event.Envelope) {
	if env.DNDStatus == nil || env.User == nil || env.User.ID == "" {
		return
	}

	m.mu.Lock()
	u := m.users[env.User.ID]
	if u == nil {
		m.mu.Unlock()
		return
	}
	u.DoNotDisturb = env.DNDStatus
	m.mu.Unlock()

	m.publish("dnd.user_updated", DNDNotice{User: u, Status: env.DNDStatus})
}

// teamProfileChanged is a team-wide template update: the incoming
// partial fields patch the matching custom profile field of every known
// user that already carries it.
func (m *Mirror) teamProfileChanged(env *event.Envelope) {
	if env.Profile == nil || len(env.Profile.Fields) == 0 {
		return
	}

	m.mu.Lock()
	for _, u := range m.users {
		fields := userCustomFields(u)
		if fields == nil {
			continue
		}
		for id, in := range env.Profile.Fields {
			if f := fields[id]; f != nil {
				f.Patch(in)
			}
		}
	}
	m.mu.Unlock()

	m.publish("team.profile_changed", env.Profile)
}

// teamProfileDeleted removes the named field ids from every known
// user's custom profile.
func (m *Mirror) teamProfileDeleted(env *event.Envelope) {
	if env.Profile == nil || len(env.Profile.Fields) == 0 {
		return
	}

	m.mu.Lock()
	for _, u := range m.users {
		fields := userCustomFields(u)
		if fields == nil {
			continue
		}
		for id := range env.Profile.Fields {
			delete(fields, id)
		}
	}
	m.mu.Unlock()

	m.publish("team.profile_deleted", env.Profile)
}

// teamProfileReordered copies only the incoming ordering positions onto
// every known user's matching fields.
func (m *Mirror) teamProfileReordered(env *event.Envelope) {
	if env.Profile == nil || len(env.Profile.Fields) == 0 {
		return
	}

	m.mu.Lock()
	for _, u := range m.users {
		fields := userCustomFields(u)
		if fields == nil {
			continue
		}
		for id, in := range env.Profile.Fields {
			if f := fields[id]; f != nil && in.Ordering != nil {
				f.Ordering = in.Ordering
			}
		}
	}
	m.mu.Unlock()

	m.publish("team.profile_reordered", env.Profile)
}

func userCustomFields(u *model.User) model.FieldMap {
	if u == nil || u.Profile == nil {
		return nil
	}
	return u.Profile.Fields
}
