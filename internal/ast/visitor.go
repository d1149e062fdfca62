package ast

// Visitor is the shared traversal contract for checkers and formatters.
// Visit hooks run before a node's children and may return false to skip
// them; Leave hooks run after. Embed BaseVisitor to handle only the
// variants a consumer cares about; unhandled variants fall through to
// their children.
type Visitor interface {
	VisitFile(*File) bool
	VisitSection(*Section) bool
	VisitBlock(*Block) bool
	VisitStatement(*Statement) bool

	LeaveFile(*File)
	LeaveSection(*Section)
	LeaveBlock(*Block)
	LeaveStatement(*Statement)
}

// BaseVisitor is a no-op Visitor that descends into everything.
type BaseVisitor struct{}

func (BaseVisitor) VisitFile(*File) bool           { return true }
func (BaseVisitor) VisitSection(*Section) bool     { return true }
func (BaseVisitor) VisitBlock(*Block) bool         { return true }
func (BaseVisitor) VisitStatement(*Statement) bool { return true }
func (BaseVisitor) LeaveFile(*File)                {}
func (BaseVisitor) LeaveSection(*Section)          {}
func (BaseVisitor) LeaveBlock(*Block)              {}
func (BaseVisitor) LeaveStatement(*Statement)      {}

// Walk traverses the tree in document order: sections as they appear in
// the file, then each container's header, children, and terminator. The
// order is deterministic, which keeps diagnostic ordering and rewrites
// stable across runs.
func Walk(v Visitor, n Node) {
	switch x := n.(type) {
	case *File:
		if !v.VisitFile(x) {
			return
		}
		for _, s := range x.Sections {
			Walk(v, s)
		}
		v.LeaveFile(x)
	case *Section:
		if !v.VisitSection(x) {
			return
		}
		if x.Header != nil {
			Walk(v, x.Header)
		}
		for _, c := range x.Body {
			Walk(v, c)
		}
		v.LeaveSection(x)
	case *Block:
		if !v.VisitBlock(x) {
			return
		}
		if x.Header != nil {
			Walk(v, x.Header)
		}
		for _, c := range x.Body {
			Walk(v, c)
		}
		if x.End != nil {
			Walk(v, x.End)
		}
		v.LeaveBlock(x)
	case *Statement:
		if !v.VisitStatement(x) {
			return
		}
		v.LeaveStatement(x)
	}
}

// Statements collects every statement under n in document order.
func Statements(n Node) []*Statement {
	var out []*Statement
	Walk(&stmtCollector{out: &out}, n)
	return out
}

type stmtCollector struct {
	BaseVisitor
	out *[]*Statement
}

func (c *stmtCollector) VisitStatement(s *Statement) bool {
	*c.out = append(*c.out, s)
	return true
}
