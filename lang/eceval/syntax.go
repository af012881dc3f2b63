// This file is part of python-sicp-chap5 - https://github.com/papamitra/python-sicp-chap5
//
// Copyright 2024 The python-sicp-chap5 Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eceval

import (
	"io"

	"github.com/papamitra/python-sicp-chap5/sexp"
	"github.com/papamitra/python-sicp-chap5/vm"
	"github.com/pkg/errors"
)

// Evaluation errors. Use errors.Cause to retrieve them.
var (
	ErrUnbound           = errors.New("unbound variable")
	ErrUnknownExpression = errors.New("unknown expression type")
	ErrUnknownProcedure  = errors.New("unknown procedure type")
	ErrArity             = errors.New("wrong number of arguments")
	ErrSyntax            = errors.New("bad syntax")
)

var (
	identOK     = sexp.Ident("ok")
	identElse   = sexp.Ident("else")
	identIf     = sexp.Ident("if")
	identBegin  = sexp.Ident("begin")
	identLambda = sexp.Ident("lambda")
)

func isTagged(exp sexp.Value, tag string) bool {
	l, ok := exp.([]sexp.Value)
	return ok && len(l) > 0 && l[0] == sexp.Ident(tag)
}

func list(v sexp.Value, what string) ([]sexp.Value, error) {
	l, ok := v.([]sexp.Value)
	if !ok {
		return nil, errors.Wrapf(ErrSyntax, "%s: expected a list, got %s", what, sexp.Dump(v))
	}
	return l, nil
}

// form checks that exp is a list of n to max elements.
func form(exp sexp.Value, min, max int) ([]sexp.Value, error) {
	l, err := list(exp, "expression")
	if err != nil {
		return nil, err
	}
	if len(l) < min || max >= 0 && len(l) > max {
		return nil, errors.Wrapf(ErrSyntax, "%s", sexp.Dump(exp))
	}
	return l, nil
}

func ident(v sexp.Value) (sexp.Ident, error) {
	id, ok := v.(sexp.Ident)
	if !ok {
		return "", errors.Wrapf(ErrSyntax, "expected an identifier, got %s", sexp.Dump(v))
	}
	return id, nil
}

func env(v sexp.Value) (*Env, error) {
	e, ok := v.(*Env)
	if !ok {
		return nil, errors.Errorf("not an environment: %s", sexp.Dump(v))
	}
	return e, nil
}

// isSelfEvaluating reports whether exp evaluates to itself. Identifiers,
// non-empty lists and pairs do not.
func isSelfEvaluating(exp sexp.Value) bool {
	switch exp := exp.(type) {
	case sexp.Ident, sexp.Pair:
		return false
	case []sexp.Value:
		return len(exp) == 0
	}
	return true
}

// parseParams parses a lambda parameter list: (a b), args or (a . args).
func parseParams(v sexp.Value) (params []sexp.Ident, rest sexp.Ident, err error) {
	switch ps := v.(type) {
	case sexp.Ident:
		return nil, ps, nil
	case sexp.Pair:
		car, err := ident(ps.Car)
		if err != nil {
			return nil, "", err
		}
		if rest, err = ident(ps.Cdr); err != nil {
			return nil, "", err
		}
		return []sexp.Ident{car}, rest, nil
	case []sexp.Value:
		params = make([]sexp.Ident, len(ps))
		for i, p := range ps {
			if params[i], err = ident(p); err != nil {
				return nil, "", err
			}
		}
		return params, "", nil
	}
	return nil, "", errors.Wrapf(ErrSyntax, "bad parameter list %s", sexp.Dump(v))
}

// paramsValue is the inverse of parseParams.
func paramsValue(p *Compound) sexp.Value {
	switch {
	case p.Rest == "":
		l := make([]sexp.Value, len(p.Params))
		for i, n := range p.Params {
			l[i] = n
		}
		return l
	case len(p.Params) == 0:
		return p.Rest
	}
	return sexp.Pair{Car: p.Params[0], Cdr: p.Rest}
}

func makeProcedure(params, body sexp.Value, e *Env) (*Compound, error) {
	var err error
	p := &Compound{Env: e}
	if p.Params, p.Rest, err = parseParams(params); err != nil {
		return nil, err
	}
	b, err := list(body, "lambda body")
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, errors.Wrap(ErrSyntax, "empty lambda body")
	}
	p.Body = b
	return p, nil
}

// sequenceExp turns a sequence of expressions into a single expression.
func sequenceExp(seq []sexp.Value) sexp.Value {
	switch len(seq) {
	case 0:
		return seq
	case 1:
		return seq[0]
	}
	return append([]sexp.Value{identBegin}, seq...)
}

// condToIf rewrites (cond (p e...) ... (else e...)) as nested ifs.
func condToIf(exp sexp.Value) (sexp.Value, error) {
	l, err := form(exp, 1, -1)
	if err != nil {
		return nil, err
	}
	return expandClauses(l[1:])
}

func expandClauses(clauses []sexp.Value) (sexp.Value, error) {
	if len(clauses) == 0 {
		return false, nil
	}
	c, err := form(clauses[0], 1, -1)
	if err != nil {
		return nil, err
	}
	actions := sequenceExp(c[1:])
	if c[0] == identElse {
		if len(clauses) > 1 {
			return nil, errors.Wrap(ErrSyntax, "else clause isn't last")
		}
		return actions, nil
	}
	rest, err := expandClauses(clauses[1:])
	if err != nil {
		return nil, err
	}
	return []sexp.Value{identIf, c[0], actions, rest}, nil
}

// letToCombination rewrites (let ((v e) ...) body...) as
// ((lambda (v ...) body...) e ...).
func letToCombination(exp sexp.Value) (sexp.Value, error) {
	l, err := form(exp, 3, -1)
	if err != nil {
		return nil, err
	}
	bindings, err := list(l[1], "let bindings")
	if err != nil {
		return nil, err
	}
	vars := make([]sexp.Value, len(bindings))
	vals := make([]sexp.Value, len(bindings))
	for i, b := range bindings {
		vb, err := form(b, 2, 2)
		if err != nil {
			return nil, err
		}
		vars[i], vals[i] = vb[0], vb[1]
	}
	lambda := append([]sexp.Value{identLambda, vars}, l[2:]...)
	return append([]sexp.Value{lambda}, vals...), nil
}

type op1 func(a sexp.Value) (sexp.Value, error)

func unary(name string, fn op1) vm.Operation {
	return func(args []sexp.Value) (sexp.Value, error) {
		if len(args) != 1 {
			return nil, errors.Errorf("%s: expected 1 argument, got %d", name, len(args))
		}
		return fn(args[0])
	}
}

func predicate(name string, fn func(sexp.Value) bool) vm.Operation {
	return unary(name, func(a sexp.Value) (sexp.Value, error) { return fn(a), nil })
}

func tagged(tag string) func(sexp.Value) bool {
	return func(exp sexp.Value) bool { return isTagged(exp, tag) }
}

// element returns an operation returning the i-th element of a list of at
// least min and at most max elements.
func element(name string, i, min, max int) vm.Operation {
	return unary(name, func(a sexp.Value) (sexp.Value, error) {
		l, err := form(a, min, max)
		if err != nil {
			return nil, err
		}
		return l[i], nil
	})
}

// tail returns an operation returning a list without its first n elements.
func tail(name string, n int) vm.Operation {
	return unary(name, func(a sexp.Value) (sexp.Value, error) {
		l, err := list(a, name)
		if err != nil {
			return nil, err
		}
		if len(l) < n {
			return nil, errors.Wrapf(ErrSyntax, "%s: %s", name, sexp.Dump(a))
		}
		return l[n:], nil
	})
}

// Ops returns the operations used by Controller. The global environment is
// returned by get-global-environment and w receives the output of user-print.
func Ops(global *Env, w io.Writer) vm.OpTable {
	ops := vm.OpTable{
		"self-evaluating?": predicate("self-evaluating?", isSelfEvaluating),
		"variable?": predicate("variable?", func(exp sexp.Value) bool {
			_, ok := exp.(sexp.Ident)
			return ok
		}),
		"quoted?":     predicate("quoted?", tagged("quote")),
		"assignment?": predicate("assignment?", tagged("set!")),
		"definition?": predicate("definition?", tagged("define")),
		"if?":         predicate("if?", tagged("if")),
		"cond?":       predicate("cond?", tagged("cond")),
		"let?":        predicate("let?", tagged("let")),
		"lambda?":     predicate("lambda?", tagged("lambda")),
		"begin?":      predicate("begin?", tagged("begin")),
		"application?": predicate("application?", func(exp sexp.Value) bool {
			l, ok := exp.([]sexp.Value)
			return ok && len(l) > 0
		}),

		"text-of-quotation": element("text-of-quotation", 1, 2, 2),
		"lambda-parameters": element("lambda-parameters", 1, 3, -1),
		"lambda-body":       tail("lambda-body", 2),
		"begin-actions":     tail("begin-actions", 1),
		"if-predicate":      element("if-predicate", 1, 3, 4),
		"if-consequent":     element("if-consequent", 2, 3, 4),
		"if-alternative": unary("if-alternative", func(exp sexp.Value) (sexp.Value, error) {
			l, err := form(exp, 3, 4)
			if err != nil {
				return nil, err
			}
			if len(l) == 4 {
				return l[3], nil
			}
			return false, nil
		}),
		"assignment-variable": element("assignment-variable", 1, 3, 3),
		"assignment-value":    element("assignment-value", 2, 3, 3),
		"definition-variable": unary("definition-variable", func(exp sexp.Value) (sexp.Value, error) {
			l, err := form(exp, 3, -1)
			if err != nil {
				return nil, err
			}
			if sig, ok := l[1].([]sexp.Value); ok && len(sig) > 0 {
				return ident(sig[0])
			}
			return ident(l[1])
		}),
		"definition-value": unary("definition-value", func(exp sexp.Value) (sexp.Value, error) {
			l, err := form(exp, 3, -1)
			if err != nil {
				return nil, err
			}
			if sig, ok := l[1].([]sexp.Value); ok && len(sig) > 0 {
				// (define (f . params) body...) is (define f (lambda params body...))
				return append([]sexp.Value{identLambda, sig[1:]}, l[2:]...), nil
			}
			if len(l) != 3 {
				return nil, errors.Wrapf(ErrSyntax, "%s", sexp.Dump(exp))
			}
			return l[2], nil
		}),
		"cond->if":         unary("cond->if", condToIf),
		"let->combination": unary("let->combination", letToCombination),

		"operator":      element("operator", 0, 1, -1),
		"operands":      tail("operands", 1),
		"no-operands?":  predicate("no-operands?", func(ops sexp.Value) bool { return length(ops) == 0 }),
		"first-operand": element("first-operand", 0, 1, -1),
		"last-operand?": predicate("last-operand?", func(ops sexp.Value) bool { return length(ops) == 1 }),
		"rest-operands": tail("rest-operands", 1),
		"first-exp":     element("first-exp", 0, 1, -1),
		"last-exp?":     predicate("last-exp?", func(seq sexp.Value) bool { return length(seq) == 1 }),
		"rest-exps":     tail("rest-exps", 1),

		"empty-arglist": func([]sexp.Value) (sexp.Value, error) {
			return []sexp.Value{}, nil
		},
		"adjoin-arg": func(args []sexp.Value) (sexp.Value, error) {
			if len(args) != 2 {
				return nil, errors.Errorf("adjoin-arg: expected 2 arguments, got %d", len(args))
			}
			argl, err := list(args[1], "adjoin-arg")
			if err != nil {
				return nil, err
			}
			// never share the backing array with a list saved on the stack
			return append(argl[:len(argl):len(argl)], args[0]), nil
		},

		"make-procedure": func(args []sexp.Value) (sexp.Value, error) {
			if len(args) != 3 {
				return nil, errors.Errorf("make-procedure: expected 3 arguments, got %d", len(args))
			}
			e, err := env(args[2])
			if err != nil {
				return nil, err
			}
			return makeProcedure(args[0], args[1], e)
		},
		"primitive-procedure?": predicate("primitive-procedure?", func(p sexp.Value) bool {
			_, ok := p.(*Primitive)
			return ok
		}),
		"compound-procedure?": predicate("compound-procedure?", func(p sexp.Value) bool {
			_, ok := p.(*Compound)
			return ok
		}),
		"apply-primitive-procedure": func(args []sexp.Value) (sexp.Value, error) {
			if len(args) != 2 {
				return nil, errors.Errorf("apply-primitive-procedure: expected 2 arguments, got %d", len(args))
			}
			p, ok := args[0].(*Primitive)
			if !ok {
				return nil, errors.Wrap(ErrUnknownProcedure, sexp.Dump(args[0]))
			}
			argl, err := list(args[1], "argument list")
			if err != nil {
				return nil, err
			}
			v, err := p.Fn(argl)
			return v, errors.Wrap(err, p.Name)
		},
		"procedure-parameters": unary("procedure-parameters", func(p sexp.Value) (sexp.Value, error) {
			c, err := compound(p)
			if err != nil {
				return nil, err
			}
			return paramsValue(c), nil
		}),
		"procedure-body": unary("procedure-body", func(p sexp.Value) (sexp.Value, error) {
			c, err := compound(p)
			if err != nil {
				return nil, err
			}
			return c.Body, nil
		}),
		"procedure-environment": unary("procedure-environment", func(p sexp.Value) (sexp.Value, error) {
			c, err := compound(p)
			if err != nil {
				return nil, err
			}
			return c.Env, nil
		}),

		"lookup-variable-value": func(args []sexp.Value) (sexp.Value, error) {
			name, e, err := varEnv("lookup-variable-value", args, 2)
			if err != nil {
				return nil, err
			}
			return e.Lookup(name)
		},
		"set-variable-value!": func(args []sexp.Value) (sexp.Value, error) {
			name, e, err := varEnv("set-variable-value!", args, 3)
			if err != nil {
				return nil, err
			}
			return identOK, e.Set(name, args[1])
		},
		"define-variable!": func(args []sexp.Value) (sexp.Value, error) {
			name, e, err := varEnv("define-variable!", args, 3)
			if err != nil {
				return nil, err
			}
			e.Define(name, args[1])
			return identOK, nil
		},
		"extend-environment": func(args []sexp.Value) (sexp.Value, error) {
			if len(args) != 3 {
				return nil, errors.Errorf("extend-environment: expected 3 arguments, got %d", len(args))
			}
			params, rest, err := parseParams(args[0])
			if err != nil {
				return nil, err
			}
			argl, err := list(args[1], "argument list")
			if err != nil {
				return nil, err
			}
			e, err := env(args[2])
			if err != nil {
				return nil, err
			}
			return e.Extend(params, rest, argl)
		},
		"get-global-environment": func([]sexp.Value) (sexp.Value, error) {
			return global, nil
		},

		"true?":  predicate("true?", vm.Truthy),
		"false?": predicate("false?", func(v sexp.Value) bool { return !vm.Truthy(v) }),
		"user-print": unary("user-print", func(v sexp.Value) (sexp.Value, error) {
			if _, err := io.WriteString(w, sexp.Dump(v)+"\n"); err != nil {
				return nil, errors.Wrap(err, "user-print")
			}
			return nil, nil
		}),
		"signal-error": func(args []sexp.Value) (sexp.Value, error) {
			if len(args) != 2 {
				return nil, errors.Errorf("signal-error: expected 2 arguments, got %d", len(args))
			}
			cause := ErrUnknownExpression
			if args[0] == sexp.Ident("unknown-procedure") {
				cause = ErrUnknownProcedure
			}
			return nil, errors.Wrap(cause, sexp.Dump(args[1]))
		},
	}
	return ops
}

func length(v sexp.Value) int {
	l, _ := v.([]sexp.Value)
	return len(l)
}

func compound(v sexp.Value) (*Compound, error) {
	p, ok := v.(*Compound)
	if !ok {
		return nil, errors.Wrap(ErrUnknownProcedure, sexp.Dump(v))
	}
	return p, nil
}

// varEnv checks the arguments of environment operations: a variable name
// first and an environment last.
func varEnv(name string, args []sexp.Value, n int) (sexp.Ident, *Env, error) {
	if len(args) != n {
		return "", nil, errors.Errorf("%s: expected %d arguments, got %d", name, n, len(args))
	}
	id, err := ident(args[0])
	if err != nil {
		return "", nil, err
	}
	e, err := env(args[n-1])
	return id, e, err
}
