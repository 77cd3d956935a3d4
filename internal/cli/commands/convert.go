package commands

import (
	"github.com/leapstack-labs/ratbase/internal/cli/output"
	"github.com/leapstack-labs/ratbase/internal/request"
	"github.com/leapstack-labs/ratbase/pkg/numeral"
	"github.com/spf13/cobra"
)

// Conversion is the JSON form of a single conversion.
type Conversion struct {
	Input      string `json:"input"`
	InputBase  string `json:"input_base"`
	OutputBase string `json:"output_base"`
	Value      string `json:"value"`
	Result     string `json:"result"`
	Integral   bool   `json:"integral"`
}

// NewConversion describes res, the conversion of req.
func NewConversion(req request.Request, res numeral.Result) *Conversion {
	return &Conversion{
		Input:      req.Number,
		InputBase:  req.In.String(),
		OutputBase: req.Out.String(),
		Value:      res.Value.String(),
		Result:     res.String(),
		Integral:   res.Integral,
	}
}

// NumberArgs requires exactly one NUMBER argument.
func NumberArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return request.Errorf(request.KindMissingNumber, "missing number argument")
	case len(args) > 1:
		return request.Errorf(request.KindExtraNumber, "extra number argument: %s", args[1])
	}
	return nil
}

// convert validates and converts number, logging both stages at debug level.
func (cc *CommandContext) convert(number string, opts ...numeral.Option) (request.Request, numeral.Result, error) {
	req, err := cc.Build(number)
	if err != nil {
		return request.Request{}, numeral.Result{}, err
	}
	cc.Logger.Debug("converting",
		"numerator", req.Parts.Num,
		"denominator", req.Parts.Den,
		"from", req.In.String(),
		"to", req.Out.String(),
	)

	res, err := req.Convert(opts...)
	if err != nil {
		return request.Request{}, numeral.Result{}, err
	}
	cc.Logger.Debug("decoded value", "value", res.Value.String())
	return req, res, nil
}

// printConversion writes the bare numeral, or the JSON object in json mode.
func (cc *CommandContext) printConversion(req request.Request, res numeral.Result) error {
	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		return cc.Renderer.JSON(NewConversion(req, res))
	}
	cc.Renderer.Println(res.String())
	return nil
}

// RunConvert converts the NUMBER in args[0]. It is the root command's action.
func RunConvert(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	req, res, err := cc.convert(args[0])
	if err != nil {
		return err
	}
	return cc.printConversion(req, res)
}
