package ast

import "fmt"

// Validate re-checks the block and terminator invariants of a tree. It is
// called by the formatter engine after each mutating pass: a FOR or IF
// block must carry its END terminator, every body entry must be non-nil,
// and nested blocks must obey the same rules. A tree that was parsed with
// errors keeps its unterminated suffix and does not validate, which keeps
// the unparser from emitting structurally invalid output for it.
func Validate(f *File) error {
	for _, sec := range f.Sections {
		if sec == nil {
			return fmt.Errorf("nil section in file")
		}
		for _, n := range sec.Body {
			if err := validateNode(n); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateNode(n Node) error {
	switch x := n.(type) {
	case nil:
		return fmt.Errorf("nil node in body")
	case *Statement:
		if x == nil {
			return fmt.Errorf("nil statement in body")
		}
		return nil
	case *Block:
		if x.Header == nil {
			return fmt.Errorf("%s block without header", x.Kind)
		}
		if (x.Kind == BlockFor || x.Kind == BlockIf) && x.End == nil {
			return fmt.Errorf("%s block opened at line %d has no END",
				x.Kind, x.Header.FirstLine())
		}
		for _, c := range x.Body {
			if err := validateNode(c); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unexpected node variant %T in body", n)
	}
}
