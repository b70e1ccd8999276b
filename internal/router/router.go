// Package router decides which action an inbound event asks for, invokes
// the matching external lookup, and shapes the reply. One action table
// serves both the webhook path (buttoned replies) and the synchronous
// fulfillment path (sentence only).
package router

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/weberbot/weber/internal/config"
	"github.com/weberbot/weber/internal/messenger"
	"github.com/weberbot/weber/internal/reply"
	"github.com/weberbot/weber/internal/search"
	"github.com/weberbot/weber/internal/weather"
)

// maxResults caps how many ranked results a reply names.
const maxResults = 3

// SearchService looks up ranked businesses for a term near a location.
type SearchService interface {
	Search(ctx context.Context, term, location string, limit int) ([]search.Result, error)
}

// WeatherService resolves a city's current conditions.
type WeatherService interface {
	Current(ctx context.Context, city string) (*weather.Snapshot, error)
}

// ChatService answers free text under a per-sender session id.
type ChatService interface {
	SmallTalk(ctx context.Context, sessionID, utterance string) (string, error)
}

// Router routes events and fulfillment queries to lookups and formatters.
type Router struct {
	search    SearchService
	weather   WeatherService
	chat      ChatService
	helpStyle config.HelpStyle
	log       *zap.Logger
}

// New creates a Router over the three lookup services.
func New(searchSvc SearchService, weatherSvc WeatherService, chatSvc ChatService, helpStyle config.HelpStyle, log *zap.Logger) *Router {
	return &Router{
		search:    searchSvc,
		weather:   weatherSvc,
		chat:      chatSvc,
		helpStyle: helpStyle,
		log:       log,
	}
}

// SessionID derives the NLU session key for a sender, so conversational
// context is per user rather than shared.
func SessionID(senderID string) string {
	return "sender-" + senderID
}

// Route handles one webhook event and returns the reply to dispatch. A nil
// payload with nil error means no reply is warranted (e.g. an unknown
// postback code). Lookup failures come back as *LookupError.
func (rt *Router) Route(ctx context.Context, ev messenger.Event) (*messenger.Payload, error) {
	switch ev.Kind {
	case messenger.KindPostback:
		return rt.routePostback(ctx, ev.Postback)
	case messenger.KindMessage:
		return rt.routeMessage(ctx, ev)
	default:
		return nil, nil
	}
}

func (rt *Router) routePostback(ctx context.Context, code string) (*messenger.Payload, error) {
	entry, ok := postbackActions[code]
	if !ok {
		rt.log.Debug("ignoring unknown postback code", zap.String("code", code))
		return nil, nil
	}

	narrative, results, spec, err := rt.lookupSearch(ctx, entry.action, entry.params)
	if err != nil {
		return nil, err
	}
	return reply.SearchReply(narrative, results, spec.withPrice), nil
}

func (rt *Router) routeMessage(ctx context.Context, ev messenger.Event) (*messenger.Payload, error) {
	text := strings.TrimSpace(ev.Text)

	if text == "" {
		return reply.Fallback(), nil
	}

	switch classifyMessage(text) {
	case ActionHelp:
		return reply.Help(rt.helpStyle), nil
	default:
		speech, err := rt.chat.SmallTalk(ctx, SessionID(ev.SenderID), text)
		if err != nil {
			return nil, lookupFailed("I failed to come up with a reply.", err)
		}
		if speech == "" {
			return reply.Fallback(), nil
		}
		return messenger.TextPayload(speech), nil
	}
}

// classifyMessage maps free text to its action: the literal help command
// (any letter case) or small talk.
func classifyMessage(text string) Action {
	if strings.EqualFold(text, "help") {
		return ActionHelp
	}
	return ActionChat
}

// Query handles the synchronous fulfillment path: pre-extracted action and
// parameters in, a speech sentence out. The returned source labels which
// lookup answered.
func (rt *Router) Query(ctx context.Context, action string, params map[string]string) (speech, source string, err error) {
	act := Action(action)

	if act == ActionWeather {
		city := params[ParamCity]
		if city == "" {
			return "", "", lookupFailed(msgCityFailed, nil)
		}
		snap, err := rt.weather.Current(ctx, city)
		if err != nil {
			return "", "", lookupFailed(msgCityFailed, err)
		}
		return reply.WeatherSentence(snap), string(ActionWeather), nil
	}

	if _, ok := searchSpecs[act]; ok {
		narrative, results, spec, err := rt.lookupSearch(ctx, act, params)
		if err != nil {
			return "", "", err
		}
		return reply.SearchSentence(narrative, results, spec.withPrice), string(act), nil
	}

	return "", "", lookupFailed(fmt.Sprintf("I don't recognize the action '%s'.", action), nil)
}

// lookupSearch resolves term and city from the action's spec, queries the
// search provider, and guards against empty result sets.
func (rt *Router) lookupSearch(ctx context.Context, act Action, params map[string]string) (string, []search.Result, searchSpec, error) {
	spec := searchSpecs[act]

	city := params[ParamCity]
	term := spec.fixedTerm
	if spec.termParam != "" {
		term = params[spec.termParam]
	}
	if city == "" || term == "" {
		return "", nil, spec, lookupFailed(spec.failureMsg, nil)
	}

	results, err := rt.search.Search(ctx, term, city, maxResults)
	if err != nil {
		return "", nil, spec, lookupFailed(spec.failureMsg, err)
	}
	if len(results) == 0 {
		return "", nil, spec, lookupFailed(spec.failureMsg, fmt.Errorf("no results for %q in %q", term, city))
	}

	return spec.narrative(term, city), results, spec, nil
}
