package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/ratbase/internal/cli/output"
	"github.com/leapstack-labs/ratbase/pkg/numeral"
	"github.com/spf13/cobra"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explain NUMBER",
		Short: "Show every step of a conversion",
		Long: `Convert NUMBER and show how it was done.

The decoding table lists each nit read while evaluating the numerator and
denominator parts in the input base, with the running total kept as an
exact fraction. The encoding table lists each digit extracted while
writing the reduced value in the output base.`,
		Example: `  ratbase explain -i=3/2 21
  ratbase explain 0.5 -o=2 --format json`,
		Args: NumberArgs,
		RunE: runExplain,
	}
}

// explanation is the JSON form of explain.
type explanation struct {
	*Conversion
	Parts    numeral.Parts `json:"parts"`
	Decoding []decodeRow   `json:"decoding"`
	Encoding []encodeRow   `json:"encoding"`
}

type decodeRow struct {
	Part  string `json:"part"`
	Pos   int    `json:"pos"`
	Nit   string `json:"nit"`
	Digit int    `json:"digit"`
	Acc   string `json:"acc"`
}

type encodeRow struct {
	Part      string `json:"part"`
	Value     string `json:"value"`
	Digit     int    `json:"digit"`
	Nit       string `json:"nit"`
	Remaining string `json:"remaining"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)

	ex := explanation{Decoding: []decodeRow{}, Encoding: []encodeRow{}}
	req, res, err := cc.convert(args[0],
		numeral.TraceDecoding(func(s numeral.DecodeStep) {
			ex.Decoding = append(ex.Decoding, decodeRow{
				Part:  s.Part,
				Pos:   s.Pos,
				Nit:   string(s.Nit),
				Digit: s.Value,
				Acc:   s.Acc.String(),
			})
		}),
		numeral.TraceEncoding(func(s numeral.EncodeStep) {
			ex.Encoding = append(ex.Encoding, encodeRow{
				Part:      s.Part,
				Value:     s.Value.String(),
				Digit:     s.Digit,
				Nit:       string(s.Nit),
				Remaining: s.Remaining.String(),
			})
		}),
	)
	if err != nil {
		return err
	}
	ex.Conversion = NewConversion(req, res)
	ex.Parts = req.Parts

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(ex)
	}

	r.Header(1, fmt.Sprintf("Conversion of %s", displayNumeral(req.Number)))
	keyValue(r, "Input base", req.In.String())
	keyValue(r, "Output base", req.Out.String())
	keyValue(r, "Parts", displayNumeral(req.Parts.Num)+" / "+displayNumeral(req.Parts.Den))
	keyValue(r, "Value", res.Value.String())
	keyValue(r, "Result", displayNumeral(res.String()))
	r.Println()

	r.Header(2, "Decoding")
	if len(ex.Decoding) == 0 {
		r.Println(r.Muted("no nits to read"))
	} else {
		rows := make([][]string, 0, len(ex.Decoding))
		for _, d := range ex.Decoding {
			rows = append(rows, []string{d.Part, strconv.Itoa(d.Pos), d.Nit, strconv.Itoa(d.Digit), d.Acc})
		}
		r.Table([]string{"Part", "Pos", "Nit", "Digit", "Accumulator"}, rows)
	}

	r.Header(2, "Encoding")
	if len(ex.Encoding) == 0 {
		r.Println(r.Muted("value is zero, the result is the empty numeral"))
		return nil
	}
	rows := make([][]string, 0, len(ex.Encoding))
	for _, e := range ex.Encoding {
		rows = append(rows, []string{e.Part, e.Value, strconv.Itoa(e.Digit), e.Nit, e.Remaining})
	}
	r.Table([]string{"Part", "Value", "Digit", "Nit", "Remaining"}, rows)
	return nil
}

func keyValue(r *output.Renderer, key, value string) {
	if r.EffectiveMode() == output.ModeText {
		r.Printf("%s %s\n", r.Styles().Bold.Render(key+":"), value)
		return
	}
	r.Println(output.FormatKeyValue(key, value))
}

// displayNumeral keeps empty numerals visible in human output.
func displayNumeral(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}
