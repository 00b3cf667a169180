package ast

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Dump writes the tree as a YAML document. Every node becomes a mapping
// with its variant under "kind" and its position under "pos".
func Dump(w io.Writer, node Node) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(ToYAML(node)); err != nil {
		return fmt.Errorf("ast: dump: %w", err)
	}
	return encoder.Close()
}

func ToYAML(node Node) *yaml.Node {
	if node == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}

	m := &mapping{n: &yaml.Node{Kind: yaml.MappingNode}}
	m.str("kind", KindOf(node))
	pos := node.Position()
	if pos.IsValid() {
		m.str("pos", fmt.Sprintf("%d:%d", pos.Line, pos.Column))
	}

	switch n := node.(type) {
	case *Module:
		m.str("name", n.Name)
		if len(n.Imports) > 0 {
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, imp := range n.Imports {
				seq.Content = append(seq.Content, scalar(imp))
			}
			m.add("imports", seq)
		}
		m.add("body", sequence(n.Body))
	case *Function:
		m.str("name", n.Name)
		params := &yaml.Node{Kind: yaml.SequenceNode}
		for _, param := range n.Params {
			pm := &mapping{n: &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}}
			pm.str("name", param.Name)
			if param.Type != "" {
				pm.str("type", param.Type)
			}
			params.Content = append(params.Content, pm.n)
		}
		m.add("params", params)
		m.str("return_type", n.ReturnType)
		m.add("body", sequence(n.Body))
	case *VariableDeclaration:
		m.str("name", n.Name)
		if n.TypeName != "" {
			m.str("type", n.TypeName)
		}
		m.add("mutable", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(n.IsMutable)})
		if n.Initializer != nil {
			m.add("initializer", ToYAML(n.Initializer))
		}
	case *BinaryOperation:
		m.str("op", n.Op)
		m.add("left", ToYAML(n.Left))
		m.add("right", ToYAML(n.Right))
	case *Literal:
		m.str("type", string(n.Kind))
		m.str("value", n.Value)
	case *FunctionCall:
		m.str("name", n.Name)
		m.add("args", sequence(n.Args))
	case *ReturnStatement:
		if n.Expression != nil {
			m.add("expression", ToYAML(n.Expression))
		}
	case *IfStatement:
		m.add("condition", ToYAML(n.Condition))
		m.add("then", sequence(n.ThenBranch))
		if len(n.ElseBranch) > 0 {
			m.add("else", sequence(n.ElseBranch))
		}
	}
	return m.n
}

type mapping struct {
	n *yaml.Node
}

func (m *mapping) add(key string, value *yaml.Node) {
	m.n.Content = append(m.n.Content, scalar(key), value)
}

func (m *mapping) str(key, value string) {
	m.add(key, scalar(value))
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func sequence(nodes []Node) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, node := range nodes {
		seq.Content = append(seq.Content, ToYAML(node))
	}
	return seq
}
