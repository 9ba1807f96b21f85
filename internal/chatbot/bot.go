// Package chatbot is the conversational core: it resolves free-text questions
// against the knowledge base, routes button presses between menu stages and
// keeps each session's transcript.
package chatbot

import (
	"fmt"

	"github.com/alexanderramin/ecostats/internal/domain"
)

// ReplyKind classifies how a turn was answered.
type ReplyKind string

const (
	KindStatistic         ReplyKind = "estadistica"
	KindVariableAtStation ReplyKind = "variable_estacion"
	KindStationSummary    ReplyKind = "resumen_estacion"
	KindExplanation       ReplyKind = "explicacion"
	KindTopic             ReplyKind = "tema"
	KindHelp              ReplyKind = "ayuda"
	KindButton            ReplyKind = "boton"
)

// Answer is the stateless response to one utterance. An empty Stage keeps
// the conversation where it is.
type Answer struct {
	Kind   ReplyKind
	Text   string
	Stage  domain.Stage
	Intent domain.IntentMatch
}

// Reply is the outcome of a turn applied to a conversation.
type Reply struct {
	Kind    ReplyKind           `json:"kind"`
	Message domain.Message      `json:"message"`
	Content Content             `json:"content"`
	Intent  *domain.IntentMatch `json:"intent,omitempty"`
}

// Bot answers questions and button presses. It holds no per-session data and
// is safe to share.
type Bot struct {
	kb       Knowledge
	resolver *Resolver
	router   *Router
}

// NewBot wires a resolver and router over kb.
func NewBot(kb Knowledge) *Bot {
	return &Bot{kb: kb, resolver: NewResolver(kb), router: NewRouter(kb)}
}

// Router exposes the stage router.
func (b *Bot) Router() *Router { return b.router }

// Resolve exposes the intent resolver.
func (b *Bot) Resolve(text string) domain.IntentMatch { return b.resolver.Resolve(text) }

// Answer resolves text and composes a reply. The first matching rule wins:
// a specific statistic, a variable at a station, a station summary, a
// variable explanation, a topic, and finally the help message.
func (b *Bot) Answer(text string) Answer {
	m := b.resolver.Resolve(text)
	a := Answer{Intent: m}

	switch {
	case m.HasStation() && m.HasVariable() && m.HasStatistic():
		a.Kind = KindStatistic
		a.Text = statisticText(b.kb, m.Station.Name, m.Variable, m.Statistic)

	case m.HasStation() && m.HasVariable():
		a.Kind = KindVariableAtStation
		a.Text = variableAtStationText(b.kb, m.Station.Name, m.Variable)

	case m.HasStation() && (m.SummaryTrigger || m.StationByOrdinal):
		a.Kind = KindStationSummary
		a.Text = stationSummaryText(b.kb, m.Station)

	case m.HasVariable() && (m.ExplainTrigger || m.VariableByOrdinal):
		d, err := b.kb.GetVariableDescription(m.Variable)
		if err != nil {
			a.Kind, a.Text = KindHelp, HelpMessage
			break
		}
		a.Kind = KindExplanation
		a.Text = explanationText(d)
		a.Stage = domain.Stage(m.Variable)

	case m.Topic != domain.TopicNone:
		a.Kind = KindTopic
		a.Text, a.Stage = b.topicReply(m.Topic)

	default:
		a.Kind = KindHelp
		a.Text = HelpMessage
	}
	return a
}

func (b *Bot) topicReply(t domain.Topic) (string, domain.Stage) {
	if stage, ok := topicStages[t]; ok {
		return b.router.Route(string(stage)).Text, stage
	}
	if t == domain.TopicMap {
		return fmt.Sprintf(mapReply, b.kb.StationCount()), ""
	}
	if text, ok := topicReplies[t]; ok {
		return text, ""
	}
	return HelpMessage, ""
}

// HandleText runs one free-text turn: the user message and the reply are
// appended, and the stage moves when the answer calls for it.
func (b *Bot) HandleText(st *ConversationState, text string) Reply {
	st.Initialize()
	st.AppendMessage(domain.RoleUser, text)

	a := b.Answer(text)
	if a.Stage != "" {
		st.SetStage(a.Stage)
	}
	msg := st.AppendMessage(domain.RoleAssistant, a.Text)

	intent := a.Intent
	return Reply{Kind: a.Kind, Message: msg, Content: b.Render(st), Intent: &intent}
}

// HandleButton runs one button press. The button label is recorded as the
// user's message and the destination's text as the reply. Unknown tags land
// on the main menu.
func (b *Bot) HandleButton(st *ConversationState, tag string) Reply {
	st.Initialize()
	st.AppendMessage(domain.RoleUser, b.router.Label(tag))

	st.SetStage(domain.NormalizeStage(tag))
	content := b.Render(st)
	msg := st.AppendMessage(domain.RoleAssistant, content.Text)

	return Reply{Kind: KindButton, Message: msg, Content: content}
}

// Render returns the content of the current stage, resetting the stage to
// root when it is not one the router knows.
func (b *Bot) Render(st *ConversationState) Content {
	c := b.router.Route(string(st.Stage))
	if st.Stage != c.Stage {
		st.SetStage(c.Stage)
	}
	return c
}
