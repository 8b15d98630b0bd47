package trace

import (
	"encoding/xml"
	"fmt"

	"github.com/cogumbreiro/apisan/internal/errs"
	"github.com/cogumbreiro/apisan/internal/event"
	"github.com/cogumbreiro/apisan/internal/exectree"
)

// xmlEvent mirrors the <EVENT> element of spec.md §6's XML node grammar.
type xmlEvent struct {
	Kind   string  `xml:"KIND"`
	Call   *string `xml:"CALL"`
	Return *string `xml:"RETURN"`
	Loc    *string `xml:"LOC"`
	Cond   *string `xml:"COND"`
	Type   string  `xml:"TYPE"`
	Code   string  `xml:"CODE"`
}

// xmlNode mirrors one <NODE> element; Children holds nested <NODE>s in
// document order.
type xmlNode struct {
	Event    xmlEvent  `xml:"EVENT"`
	Children []xmlNode `xml:"NODE"`
}

// xmlRoot wraps the top-level children of a trace block's XML document;
// each child is the root of one execution tree (spec.md §4.1: "Root
// element contains one or more execution trees as top-level children").
// The wrapper's own tag name is unconstrained.
type xmlRoot struct {
	Nodes []xmlNode `xml:"NODE"`
}

// Resolver maps a raw <CODE> payload to a resolved "file:logical:line"
// site, mirroring original_source's FilenameResolver/ContainedResolver.
type Resolver func(raw string) string

// noResolver passes the raw code text through unchanged.
func noResolver(raw string) string { return raw }

// DecodeBlock parses one trace block's XML body into its top-level
// execution trees. An XML parse error or an unrecognized <KIND> returns
// an error and no trees; ParseFile then abandons the whole file (spec.md
// §7.1).
func DecodeBlock(body string, parseConstraints bool, resolve Resolver) ([]*exectree.ExecTree, error) {
	if resolve == nil {
		resolve = noResolver
	}
	var root xmlRoot
	if err := xml.Unmarshal([]byte(body), &root); err != nil {
		return nil, errs.New(errs.TraceFile, "decode trace block", err)
	}
	trees := make([]*exectree.ExecTree, 0, len(root.Nodes))
	for i := range root.Nodes {
		tree, err := buildTree(&root.Nodes[i], parseConstraints, resolve)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// buildFrame tracks one level of the explicit-stack construction below.
type buildFrame struct {
	node     *xmlNode
	cmgr     *exectree.ConstraintMgr
	execNode *exectree.ExecNode
	childIdx int
}

// buildTree constructs an ExecTree from a parsed xmlNode iteratively
// (explicit stack), avoiding deep recursion on large traces (spec.md
// §4.3) and threading ConstraintMgr propagation as each node's Event is
// built — a node's ConstraintMgr is exectree.Next(parent's
// ConstraintMgr, the node's own Event), exactly the rule exectree.Next
// implements. When parseConstraints is false (ThreadSafety,
// spec.md §4.5/§4.7), the chain is never built — every node shares a nil
// ConstraintMgr, matching the original's parse_constraints=false
// shortcut of skipping init_constraint_mgr entirely.
func buildTree(root *xmlNode, parseConstraints bool, resolve Resolver) (*exectree.ExecTree, error) {
	stack := []*buildFrame{{node: root, cmgr: nil}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.execNode == nil {
			ev, err := buildEvent(&top.node.Event, resolve)
			if err != nil {
				return nil, err
			}
			cmgr := top.cmgr
			if parseConstraints {
				cmgr = exectree.Next(top.cmgr, ev)
			}
			top.execNode = exectree.NewNode(ev, cmgr)
		}

		if top.childIdx < len(top.node.Children) {
			child := &top.node.Children[top.childIdx]
			top.childIdx++
			stack = append(stack, &buildFrame{node: child, cmgr: top.execNode.CMgr})
			continue
		}

		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.execNode.Children = append(parent.execNode.Children, top.execNode)
		} else {
			return exectree.New(top.execNode), nil
		}
	}
	// unreachable: the root frame is always the last one popped, and that
	// pop always returns above.
	return nil, errs.New(errs.TraceFile, "empty trace node stack", nil)
}

func buildEvent(ev *xmlEvent, resolve Resolver) (*event.Event, error) {
	code := resolve(ev.Code)
	switch ev.Kind {
	case event.TagCall:
		return event.NewCall(derefStr(ev.Call), code), nil
	case event.TagReturn:
		return event.NewReturn(derefStr(ev.Return), code), nil
	case event.TagLocation:
		return event.NewLocation(derefStr(ev.Loc), ev.Type, code), nil
	case event.TagAssume:
		return event.NewAssume(derefStr(ev.Cond)), nil
	case event.TagEOP:
		return event.NewEOP(), nil
	default:
		return nil, errs.New(errs.UnknownEventKind, fmt.Sprintf("unrecognized <KIND>%s</KIND>", ev.Kind), nil)
	}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
