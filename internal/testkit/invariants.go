package testkit

import (
	"fmt"

	"l5cond/internal/catalog"
	"l5cond/internal/model"
)

// CheckModelInvariants verifies what every decoded model must satisfy:
// 1) no empty blocks
// 2) plain conditions have both sides, two-stage ones 1..2 sub-conditions
// 3) every call matches its catalog arity and return type
func CheckModelInvariants(m *model.Model, cat *catalog.Catalog) error {
	if m == nil {
		return fmt.Errorf("nil model")
	}
	checkCall := func(op model.Operand) error {
		call, ok := op.(model.FunctionCall)
		if !ok {
			return nil
		}
		fn, ok := cat.Function(call.ID())
		if !ok {
			return fmt.Errorf("call %s not in catalog", call.Name())
		}
		if call.NumArgs() != fn.Arity {
			return fmt.Errorf("call %s has %d args, catalog arity %d", call.Name(), call.NumArgs(), fn.Arity)
		}
		if call.Returns() != fn.Returns {
			return fmt.Errorf("call %s returns %s, catalog says %s", call.Name(), call.Returns(), fn.Returns)
		}
		return nil
	}

	for bi, b := range m.Blocks() {
		if b.Len() == 0 {
			return fmt.Errorf("block %d is empty", bi)
		}
		for ci, c := range b.Conditions() {
			if c.Left() == nil {
				return fmt.Errorf("block %d condition %d: missing left operand", bi, ci)
			}
			if err := checkCall(c.Left()); err != nil {
				return fmt.Errorf("block %d condition %d: %w", bi, ci, err)
			}
			if c.IsBitFlag() {
				if n := len(c.Subs()); n < 1 || n > 2 {
					return fmt.Errorf("block %d condition %d: %d sub-conditions", bi, ci, n)
				}
				continue
			}
			if c.Right() == nil {
				return fmt.Errorf("block %d condition %d: missing right operand", bi, ci)
			}
			if err := checkCall(c.Right()); err != nil {
				return fmt.Errorf("block %d condition %d: %w", bi, ci, err)
			}
		}
	}
	return nil
}
