package execution

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// CallTreeDot renders a CallInfo call tree as a Graphviz DOT document, one
// node per CallInfo (labeled with contract address, selector and
// pass/fail) and one edge per parent/inner-call relationship. This is a
// debugging aid for post-mortem inspection of a transaction's call tree,
// not part of the execution algorithm itself.
func CallTreeDot(root *CallInfo) (string, error) {
	graph := gographviz.NewGraph()
	if err := graph.SetName("calltree"); err != nil {
		return "", err
	}
	if err := graph.SetDir(true); err != nil {
		return "", err
	}

	counter := 0
	var walk func(parent string, c *CallInfo) error
	walk = func(parent string, c *CallInfo) error {
		id := fmt.Sprintf("n%d", counter)
		counter++

		color := "green"
		if !c.Succeeded() {
			color = "red"
		}
		label := fmt.Sprintf("\"%s\\n%s\\nsteps=%d\"", c.ContractAddress.String(), c.EntryPointSelector.Short(), c.Resources.NSteps)
		attrs := map[string]string{"label": label, "color": color}
		if err := graph.AddNode("calltree", id, attrs); err != nil {
			return err
		}
		if parent != "" {
			if err := graph.AddEdge(parent, id, true, nil); err != nil {
				return err
			}
		}
		for _, inner := range c.InnerCalls {
			if err := walk(id, inner); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk("", root); err != nil {
		return "", err
	}
	return graph.String(), nil
}
