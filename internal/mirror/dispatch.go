package mirror

import "github.com/launchsoft/slackmirror/internal/event"

// Handler consumes one decoded envelope.
type Handler func(*event.Envelope)

// Dispatcher routes a decoded envelope to exactly one mutator keyed by
// its tag. The table is fixed at construction; unknown tags are a
// forward-compatible no-op. Group and IM tags route to the same channel
// mutators as their channel counterparts.
type Dispatcher struct {
	mirror   *Mirror
	handlers map[string]Handler
}

// NewDispatcher builds the routing table over the mirror's mutators.
// hello and pong are connection-level frames that belong to the
// supervisor, not the mirror; nil handlers ignore them.
func NewDispatcher(m *Mirror, hello, pong Handler) *Dispatcher {
	noop := func(*event.Envelope) {}
	if hello == nil {
		hello = noop
	}
	if pong == nil {
		pong = noop
	}

	d := &Dispatcher{mirror: m}
	d.handlers = map[string]Handler{
		event.TypeHello: hello,
		event.TypePong:  pong,

		event.TypeMessage:        m.messageReceived,
		event.TypeMessageChanged: m.messageChanged,
		event.TypeMessageDeleted: m.messageDeleted,

		event.TypeUserTyping:            m.userTyping,
		event.TypeChannelMarked:         m.channelMarked,
		event.TypeChannelCreated:        m.channelCreated,
		event.TypeChannelJoined:         m.channelJoined,
		event.TypeChannelLeft:           m.channelLeft,
		event.TypeChannelDeleted:        m.channelDeleted,
		event.TypeChannelRenamed:        m.channelRenamed,
		event.TypeChannelArchive:        m.channelArchived(true),
		event.TypeChannelUnarchive:      m.channelArchived(false),
		event.TypeChannelHistoryChanged: m.channelHistoryChanged,

		event.TypeGroupJoined:         m.channelJoined,
		event.TypeGroupLeft:           m.channelLeft,
		event.TypeGroupOpen:           m.channelOpen(true),
		event.TypeGroupClose:          m.channelOpen(false),
		event.TypeGroupArchive:        m.channelArchived(true),
		event.TypeGroupUnarchive:      m.channelArchived(false),
		event.TypeGroupRename:         m.channelRenamed,
		event.TypeGroupMarked:         m.channelMarked,
		event.TypeGroupHistoryChanged: m.channelHistoryChanged,

		event.TypeIMCreated:        m.channelCreated,
		event.TypeIMOpen:           m.channelOpen(true),
		event.TypeIMClose:          m.channelOpen(false),
		event.TypeIMMarked:         m.channelMarked,
		event.TypeIMHistoryChanged: m.channelHistoryChanged,

		event.TypeDNDUpdated:     m.dndUpdated,
		event.TypeDNDUpdatedUser: m.dndUserUpdated,

		event.TypeFileCreated:        m.processFile,
		event.TypeFileShared:         m.processFile,
		event.TypeFileUnshared:       m.processFile,
		event.TypeFilePublic:         m.processFile,
		event.TypeFileChange:         m.processFile,
		event.TypeFilePrivate:        m.filePrivate,
		event.TypeFileDeleted:        m.fileDeleted,
		event.TypeFileCommentAdded:   m.fileCommentAdded,
		event.TypeFileCommentEdited:  m.fileCommentEdited,
		event.TypeFileCommentDeleted: m.fileCommentDeleted,

		event.TypePinAdded:   m.pinAdded,
		event.TypePinRemoved: m.pinRemoved,

		event.TypeStarAdded:   m.itemStarred(true),
		event.TypeStarRemoved: m.itemStarred(false),

		event.TypeReactionAdded:   m.reactionAdded,
		event.TypeReactionRemoved: m.reactionRemoved,

		event.TypePresenceChange:       m.presenceChanged,
		event.TypeManualPresenceChange: m.manualPresenceChanged,
		event.TypePrefChange:           m.preferenceChanged,
		event.TypeUserChange:           m.userChanged,

		event.TypeTeamJoin:           m.teamJoined,
		event.TypeTeamPlanChange:     m.teamPlanChanged,
		event.TypeTeamPrefChange:     m.teamPrefChanged,
		event.TypeTeamRename:         m.teamRenamed,
		event.TypeTeamDomainChange:   m.teamDomainChanged,
		event.TypeEmailDomainChanged: m.emailDomainChanged,
		event.TypeEmojiChanged:       m.emojiChanged,

		event.TypeBotAdded:   m.botChanged,
		event.TypeBotChanged: m.botChanged,

		event.TypeSubteamCreated:     m.subteamUpdated,
		event.TypeSubteamUpdated:     m.subteamUpdated,
		event.TypeSubteamSelfAdded:   m.subteamSelfAdded,
		event.TypeSubteamSelfRemoved: m.subteamSelfRemoved,

		event.TypeTeamProfileChange:  m.teamProfileChanged,
		event.TypeTeamProfileDelete:  m.teamProfileDeleted,
		event.TypeTeamProfileReorder: m.teamProfileReordered,
	}
	return d
}

// Dispatch routes one envelope. Send acknowledgments arrive without a
// type tag and go straight to sent-message reconciliation.
func (d *Dispatcher) Dispatch(env *event.Envelope) {
	if env == nil {
		return
	}
	if env.IsSendAck() {
		d.mirror.messageSent(env)
		return
	}
	if h, ok := d.handlers[env.Kind()]; ok {
		h(env)
	}
}
