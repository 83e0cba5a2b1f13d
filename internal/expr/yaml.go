package expr

import (
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jsonsql/internal/types"
)

// Node decodes one expression from YAML. The accepted shapes are
//
//	{column: doc}
//	{lit: 'a'}                      # text, int, float, bool or null by YAML tag
//	{call: json_get, args: [...]}
//	{cast: <expr>, to: bigint}
//	{op: '->', left: <expr>, right: <expr>}
//	{is_null: <expr>, negated: true}
type Node struct {
	Expr Expr
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	e, err := DecodeYAML(value)
	if err != nil {
		return err
	}
	n.Expr = e
	return nil
}

// ParseYAML decodes a single expression document.
func ParseYAML(data []byte) (Expr, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	if n.Expr == nil {
		return nil, fmt.Errorf("empty expression")
	}
	return n.Expr, nil
}

var shapes = [][]string{
	{"column"},
	{"lit"},
	{"call", "args"},
	{"cast", "to"},
	{"op", "left", "right"},
	{"is_null", "negated"},
}

// DecodeYAML decodes an expression from a YAML mapping node.
func DecodeYAML(value *yaml.Node) (Expr, error) {
	if value.Kind == yaml.DocumentNode && len(value.Content) == 1 {
		value = value.Content[0]
	}
	if value.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expression must be a mapping", value.Line)
	}

	fields := make(map[string]*yaml.Node, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate key %q", value.Content[i].Line, key)
		}
		fields[key] = value.Content[i+1]
	}

	var shape []string
	for _, s := range shapes {
		if _, ok := fields[s[0]]; ok {
			shape = s
			break
		}
	}
	if shape == nil {
		return nil, fmt.Errorf("line %d: expression needs one of column, lit, call, cast, op, is_null", value.Line)
	}
	for key := range fields {
		if !slices.Contains(shape, key) {
			return nil, fmt.Errorf("line %d: unexpected key %q in %s expression", value.Line, key, shape[0])
		}
	}

	switch shape[0] {
	case "column":
		return Column{Name: fields["column"].Value}, nil
	case "lit":
		d, err := decodeLiteral(fields["lit"])
		if err != nil {
			return nil, err
		}
		return Literal{Value: d}, nil
	case "call":
		call := Call{Name: fields["call"].Value}
		if args, ok := fields["args"]; ok {
			if args.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: args must be a sequence", args.Line)
			}
			for _, a := range args.Content {
				e, err := DecodeYAML(a)
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, e)
			}
		}
		return call, nil
	case "cast":
		inner, err := DecodeYAML(fields["cast"])
		if err != nil {
			return nil, err
		}
		to, ok := fields["to"]
		if !ok {
			return nil, fmt.Errorf("line %d: cast needs a target type", value.Line)
		}
		t, err := types.Parse(to.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", to.Line, err)
		}
		return Cast{Expr: inner, To: t}, nil
	case "op":
		left, lok := fields["left"]
		right, rok := fields["right"]
		if !lok || !rok {
			return nil, fmt.Errorf("line %d: operator needs left and right", value.Line)
		}
		l, err := DecodeYAML(left)
		if err != nil {
			return nil, err
		}
		r, err := DecodeYAML(right)
		if err != nil {
			return nil, err
		}
		return Binary{Op: Op(fields["op"].Value), Left: l, Right: r}, nil
	default:
		inner, err := DecodeYAML(fields["is_null"])
		if err != nil {
			return nil, err
		}
		n := IsNull{Expr: inner}
		if neg, ok := fields["negated"]; ok {
			if err := neg.Decode(&n.Negated); err != nil {
				return nil, err
			}
		}
		return n, nil
	}
}

func decodeLiteral(n *yaml.Node) (types.Datum, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: literal must be a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!null":
		return types.DNull{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return types.DBool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return types.DInt(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return types.DFloat(f), nil
	default:
		return types.DString(n.Value), nil
	}
}
