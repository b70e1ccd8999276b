package router

import (
	"fmt"

	"github.com/weberbot/weber/internal/reply"
)

// Action names one thing the bridge knows how to do. The value doubles as
// the fulfillment endpoint's action string and as the reply source label.
type Action string

const (
	ActionHelp            Action = "help"
	ActionChat            Action = "chat"
	ActionFoodSearch      Action = "food"
	ActionTypedFoodSearch Action = "foodtype"
	ActionTourismSearch   Action = "tourism"
	ActionHotelSearch     Action = "hotel"
	ActionWeather         Action = "weather"
)

// Parameter names as supplied by the NLU service / fulfillment callers.
const (
	ParamCity        = "geo-city"
	ParamFoodType    = "food-type"
	ParamTourismType = "tourism-type"
)

// User-facing lookup failure messages, surfaced as the fulfillment
// errorType.
const (
	msgCityFailed        = "I failed to look up the city name."
	msgFoodTypeFailed    = "I failed to look up the city name / food type."
	msgTourismTypeFailed = "I failed to look up the city name / tourism type."
)

// LookupError reports a failed or empty external lookup. Message is safe
// to show to callers; the wrapped error is for logs.
type LookupError struct {
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LookupError) Unwrap() error { return e.Err }

func lookupFailed(msg string, err error) *LookupError {
	return &LookupError{Message: msg, Err: err}
}

// searchSpec describes how one search-backed action queries the provider
// and narrates its results. Exactly one of fixedTerm / termParam is set.
type searchSpec struct {
	fixedTerm  string
	termParam  string
	withPrice  bool
	narrative  func(term, city string) string
	failureMsg string
}

// searchSpecs is the single action table: adding a search action means
// adding one entry here, nothing else.
var searchSpecs = map[Action]searchSpec{
	ActionFoodSearch: {
		fixedTerm: "food",
		withPrice: true,
		narrative: func(_, city string) string {
			return fmt.Sprintf("The top restaurants in the city of %s", city)
		},
		failureMsg: msgCityFailed,
	},
	ActionTypedFoodSearch: {
		termParam: ParamFoodType,
		withPrice: true,
		narrative: func(term, city string) string {
			return fmt.Sprintf("The top %s restaurants in the city of %s", term, city)
		},
		failureMsg: msgFoodTypeFailed,
	},
	ActionTourismSearch: {
		termParam: ParamTourismType,
		withPrice: false,
		narrative: func(term, city string) string {
			return fmt.Sprintf("The top %s spots in the city of %s", term, city)
		},
		failureMsg: msgTourismTypeFailed,
	},
	ActionHotelSearch: {
		fixedTerm: "hotel",
		withPrice: true,
		narrative: func(_, city string) string {
			return fmt.Sprintf("The top hotels in the city of %s", city)
		},
		failureMsg: msgCityFailed,
	},
}

// postbackActions maps the help-menu postback codes to their hardcoded
// demo parameters. These are fixed showcases, not user-supplied values.
var postbackActions = map[string]struct {
	action Action
	params map[string]string
}{
	reply.PostbackFood: {
		action: ActionTypedFoodSearch,
		params: map[string]string{ParamCity: "Boston", ParamFoodType: "pizza"},
	},
	reply.PostbackTourist: {
		action: ActionTourismSearch,
		params: map[string]string{ParamCity: "Portland", ParamTourismType: "hiking"},
	},
	reply.PostbackHotel: {
		action: ActionHotelSearch,
		params: map[string]string{ParamCity: "Las Vegas"},
	},
}
