package agent

import (
	"context"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

func system(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: system(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user follows a list of Chinese stocks and ETFs, some of them held as positions
			counted in lots of 100 shares. He is here to understand how they move today.
			The user assumes that you know his watchlist, check it first.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns an expert of the Chinese markets grounded on web search.
func NewAnalyst(model string) *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert of the Shanghai, Shenzhen and Beijing stock exchanges.
		Ask the Analyst whenever you need recent news or grounding information about a company or a fund.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: system(`
			You are an analyst of the Chinese stock markets, you can search anything related to
			companies, funds and market news. Leverage Google Search to ground your assertions.
			Instruments are named by a market prefix (sh, sz, bj) and a 6 digit code.
			`),
		},
	}
}

// SnapshotFunc returns the latest quotes of the watchlist.
type SnapshotFunc func(ctx context.Context) (*watchlist.Snapshot, error)

// NewKeeper returns the expert of the user's watchlist, reading it through
// snapshot.
func NewKeeper(model string, snapshot SnapshotFunc) *Expert {
	lib := []Function{Quotes(snapshot)}
	return &Expert{
		Name: "Keeper",
		Description: `This is the Keeper of the user's watchlist. He reads the live quotes of every
		followed instrument, the positions and the profit of the day.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: system(`
			You keep the user's watchlist. Use the available tools to read it before answering:
			  - price, change and change percent of each instrument
			  - held lots and the profit of the day per position
			  - the total profit of the day
			An instrument without data is suspended or unknown to the feed.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// QuotesFunction is the name of the tool returned by Quotes.
const QuotesFunction = "watchlist_quotes"

// Quotes returns the tool reading the current quotes of the watchlist as a
// markdown table.
func Quotes(snapshot SnapshotFunc) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        QuotesFunction,
			Description: `Returns the live quotes of every instrument in the user's watchlist, in watchlist order.`,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with one row per instrument, followed by the total profit of the day.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := snapshot(ctx)
			if err != nil {
				return errorResponse(id, QuotesFunction, err)
			}
			return outputResponse(id, QuotesFunction, renderer.RenderTable(s, renderer.Options{}))
		},
	}
}
