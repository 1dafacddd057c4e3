package detectors

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"tactscan/internal/ast"
	"tactscan/internal/ir"
	"tactscan/internal/warnings"
)

// RaceCondition finds contract state that may change while a message flow
// is in progress. Contracts handle one message at a time, but between a send
// and the matching response any other message can be processed:
//
//	receive(msg: Request) {
//	    self.queryId = msg.queryId;
//	    send(...);
//	}
//	receive(msg: Response) {
//	    require(msg.queryId == self.queryId, "unexpected response");
//	}
//
// Both the handler that stores the value and the one that reads it back are
// reported.
type RaceCondition struct {
	base
}

func NewRaceCondition(opts Options) *RaceCondition {
	return &RaceCondition{base{
		id:       "RaceCondition",
		severity: warnings.High,
		category: warnings.Security,
		opts:     opts,
	}}
}

// stateAccess is what a single function does with contract state.
type stateAccess struct {
	name   string
	fn     *ast.Function
	reads  []string
	writes []string
	sends  bool
}

func (a *stateAccess) external() bool {
	return a.fn.Kind.IsReceiver() || a.fn.Kind == ast.FunctionInit || a.fn.Kind == ast.FunctionGetter
}

func (r *RaceCondition) Check(ctx context.Context, cu *ir.CompilationUnit) ([]warnings.Warning, error) {
	var found []warnings.Warning
	for _, contract := range cu.Contracts(ir.ForEachOptions{IncludeStdlib: r.opts.IncludeStdlib}) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if contract.IsTrait {
			continue
		}
		found = append(found, r.checkContract(cu, contract)...)
	}
	return found, nil
}

func (r *RaceCondition) checkContract(cu *ir.CompilationUnit, contract *ast.Contract) []warnings.Warning {
	fields := make(map[string]bool)
	for _, f := range contract.Fields() {
		fields[f.Name.Value] = true
	}

	var accesses []*stateAccess
	accessors := make(map[string][]*stateAccess)
	for _, fn := range contract.Functions() {
		a := collectAccess(cu, contract, fn, fields)
		if len(a.reads) == 0 && len(a.writes) == 0 {
			continue
		}
		accesses = append(accesses, a)
		for _, f := range sortedUnion(a.reads, a.writes) {
			accessors[f] = append(accessors[f], a)
		}
	}

	var found []warnings.Warning
	for _, a := range accesses {
		if a.sends {
			for _, field := range a.writes {
				var others []string
				for _, o := range accessors[field] {
					if o != a && o.external() {
						others = append(others, o.name)
					}
				}
				if len(others) == 0 {
					continue
				}
				found = append(found, r.makeWarning(warnings.Warning{
					Message: fmt.Sprintf(`Potential race condition: Function "%s" writes to state variable "%s" and sends messages. `+
						"This variable is also accessed by: %s. "+
						"Other messages may arrive and modify this state between send and response.",
						a.name, field, strings.Join(others, ", ")),
					Position:   a.fn.Pos,
					Suggestion: "Consider using local variables or message-specific storage instead of shared state for values that must remain consistent across async message flows.",
				}))
			}
		}

		if !a.fn.Kind.IsReceiver() {
			continue
		}
		for _, field := range a.reads {
			var writers []string
			for _, o := range accessors[field] {
				if o != a && o.sends && slices.Contains(o.writes, field) {
					writers = append(writers, o.name)
				}
			}
			if len(writers) == 0 {
				continue
			}
			found = append(found, r.makeWarning(warnings.Warning{
				Message: fmt.Sprintf(`Potential race condition: Receiver "%s" reads state variable "%s" that is written by message-sending functions: %s. `+
					"The value may change between when it was set and when this receiver reads it.",
					a.name, field, strings.Join(writers, ", ")),
				Position:         a.fn.Pos,
				ExtraDescription: "This pattern is particularly dangerous with query_id or nonce values that must match between request and response.",
				Suggestion:       "Pass necessary data as part of the message instead of relying on shared state that can change.",
			}))
		}
	}

	log.Debugf("%s: %d functions access state, %d race warnings", contract.Name.Value, len(accesses), len(found))
	return found
}

// collectAccess gathers the fields fn reads and writes. A function sends when
// it, or anything it calls, sends a message.
func collectAccess(cu *ir.CompilationUnit, contract *ast.Contract, fn *ast.Function, fields map[string]bool) *stateAccess {
	a := &stateAccess{name: ir.FunctionName(contract, fn), fn: fn}
	if node, ok := cu.CallGraph.NodeByName(a.name); ok {
		a.sends = cu.CallGraph.ReachesEffect(node.Idx, ir.EffectSend)
	}

	ast.ForEachStatement(fn.Body, func(s ast.Stmt) {
		if ir.Sends(s) {
			a.sends = true
		}
		for _, f := range ir.StateReads(s) {
			if fields[f] {
				a.reads = append(a.reads, f)
			}
		}
		for _, f := range ir.StateWrites(s) {
			if fields[f] {
				a.writes = append(a.writes, f)
			}
		}
	})
	a.reads = sortedUnion(a.reads)
	a.writes = sortedUnion(a.writes)
	return a
}

func sortedUnion(sets ...[]string) []string {
	all := slices.Concat(sets...)
	slices.Sort(all)
	return slices.Compact(all)
}
