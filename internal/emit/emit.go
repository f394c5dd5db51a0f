package emit

import (
	"strconv"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/transform"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

// dataVisitor registers a data object for every combinator introduced by
// a data declaration.
type dataVisitor struct {
	transform.DefaultVisit
	machine *vm.Machine
	out     []vm.Object
}

func (v *dataVisitor) VisitCombinator(p ast.Position, path []string, name string) {
	c := vm.NewData(path, name)
	v.machine.DefineData(c)
	v.out = append(v.out, c)
}

func (v *dataVisitor) VisitDataDecl(p ast.Position, combinators []ast.Node) {
	v.Self.VisitAll(combinators)
}

// definitions, values and operators carry no data combinators
func (v *dataVisitor) VisitDefinition(p ast.Position, combinator, body ast.Node)   {}
func (v *dataVisitor) VisitValueDecl(p ast.Position, combinator, body ast.Node)   {}
func (v *dataVisitor) VisitOperatorDecl(p ast.Position, combinator, body ast.Node) {}

// Data registers every data combinator of a lifted module with the
// machine and returns the created objects.
func Data(m *vm.Machine, a ast.Node) (out []vm.Object, err error) {
	defer diag.Recover(&err)
	v := &dataVisitor{machine: m}
	v.Self = v
	v.Self.Visit(a)
	return v.out, nil
}

type emitState int

const (
	statePattern emitState = iota
	stateExpr
	stateExprRoot
)

// frameArgOffset is the frame slot of the first argument: slots 0..4 hold
// the result thunk, result index, continuation, exception handler and
// combinator.
const frameArgOffset = 5

// codeVisitor generates one bytecode object per definition. Expression
// code is emitted under a three-state machine: patterns test against the
// register holding the scrutinee, plain expressions store their value in
// the current result slot, and root expressions assemble a thunk and
// install it as the frame's continuation.
type codeVisitor struct {
	transform.DefaultVisit
	machine *vm.Machine
	coder   *Coder

	state    emitState
	regFrame vm.Reg
	regRt    vm.Reg
	regRti   vm.Reg
	regK     vm.Reg
	regExc   vm.Reg

	arity     int
	current   vm.Reg
	failLabel vm.Label
	variables map[string]vm.Reg

	out []vm.Object
}

func (v *codeVisitor) bind(name string, r vm.Reg) {
	v.variables[name] = r
}

func (v *codeVisitor) binding(p ast.Position, name string) vm.Reg {
	r, ok := v.variables[name]
	if !ok {
		diag.FatalAt(p.Diag(), "unbound variable %s", name)
	}
	return r
}

func splitCombinator(a ast.Node) ([]string, string) {
	switch n := a.(type) {
	case *ast.Combinator:
		return n.Path, n.Name
	case *ast.Operator:
		return n.Path, n.Name
	default:
		diag.FatalAt(a.Pos().Diag(), "combinator expected")
		return nil, ""
	}
}

// emitConstant places a constant according to the current state: test it
// in a pattern, store it in the result slot in an expression, or thunk it
// at the root.
func (v *codeVisitor) emitConstant(o vm.Object) {
	switch v.state {
	case statePattern:
		r := v.current
		l := v.failLabel
		ri := v.coder.GenerateRegister()
		d := v.coder.Constant(o)
		v.coder.EmitData(ri, d)
		v.coder.EmitTest(r, ri)
		v.coder.EmitFail(l)
	case stateExprRoot:
		rt := v.coder.GenerateRegister()
		rti := v.coder.GenerateRegister()
		k := v.coder.GenerateRegister()
		exc := v.coder.GenerateRegister()
		c := v.coder.GenerateRegister()
		t := v.coder.GenerateRegister()

		v.coder.EmitMov(rt, v.regRt)
		v.coder.EmitMov(rti, v.regRti)
		v.coder.EmitMov(k, v.regK)
		v.coder.EmitMov(exc, v.regExc)

		d := v.coder.Constant(o)
		v.coder.EmitData(c, d)
		v.coder.EmitArray(t, rt, c)

		v.state = stateExpr
		x := v.coder.GenerateRegister()
		v.coder.EmitConcatX(x, t, v.regFrame, frameArgOffset+v.arity)
		v.regK = x
	case stateExpr:
		c := v.coder.GenerateRegister()
		d := v.coder.Constant(o)
		v.coder.EmitData(c, d)
		v.coder.EmitSet(v.regRt, v.regRti, c)
	}
}

// emitCombinator places a combinator object. In a pattern it is tested
// like any constant; in expression position it is thunked instead of
// stored, because a bare combinator reference may still reduce.
func (v *codeVisitor) emitCombinator(o vm.Object) {
	switch v.state {
	case statePattern:
		r := v.current
		l := v.failLabel
		ri := v.coder.GenerateRegister()
		d := v.coder.Constant(o)
		v.coder.EmitData(ri, d)
		v.coder.EmitTest(r, ri)
		v.coder.EmitFail(l)
	case stateExpr, stateExprRoot:
		rt := v.coder.GenerateRegister()
		rti := v.coder.GenerateRegister()
		k := v.coder.GenerateRegister()
		exc := v.coder.GenerateRegister()
		c := v.coder.GenerateRegister()
		t := v.coder.GenerateRegister()

		v.coder.EmitMov(rt, v.regRt)
		v.coder.EmitMov(rti, v.regRti)
		v.coder.EmitMov(k, v.regK)
		v.coder.EmitMov(exc, v.regExc)

		d := v.coder.Constant(o)
		v.coder.EmitData(c, d)
		v.coder.EmitArray(t, rt, c)

		if v.state == stateExprRoot {
			v.state = stateExpr
			x := v.coder.GenerateRegister()
			v.coder.EmitConcatX(x, t, v.regFrame, frameArgOffset+v.arity)
			v.regK = x
		} else {
			v.regK = t
		}
	}
}

func (v *codeVisitor) VisitInteger(p ast.Position, text string) {
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		diag.FatalAt(p.Diag(), "malformed integer literal %s", text)
	}
	v.emitConstant(v.machine.CreateInteger(i))
}

func (v *codeVisitor) VisitHexInteger(p ast.Position, text string) {
	i, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		diag.FatalAt(p.Diag(), "malformed hexadecimal literal %s", text)
	}
	v.emitConstant(v.machine.CreateInteger(i))
}

func (v *codeVisitor) VisitFloat(p ast.Position, text string) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		diag.FatalAt(p.Diag(), "malformed float literal %s", text)
	}
	v.emitConstant(v.machine.CreateFloat(f))
}

func (v *codeVisitor) VisitCharacter(p ast.Position, text string) {
	rr := []rune(text)
	if len(rr) != 1 {
		diag.FatalAt(p.Diag(), "malformed character literal %q", text)
	}
	v.emitConstant(v.machine.CreateChar(rr[0]))
}

func (v *codeVisitor) VisitText(p ast.Position, text string) {
	v.emitConstant(v.machine.CreateText(text))
}

func (v *codeVisitor) VisitCombinator(p ast.Position, path []string, name string) {
	v.emitCombinator(v.machine.GetCombinator(path, name))
}

func (v *codeVisitor) VisitOperator(p ast.Position, path []string, name string) {
	v.VisitCombinator(p, path, name)
}

func (v *codeVisitor) VisitVariable(p ast.Position, name string) {
	switch v.state {
	case statePattern:
		v.bind(name, v.current)
	case stateExprRoot:
		v.state = stateExpr
		r := v.binding(p, name)

		rt := v.coder.GenerateRegister()
		rti := v.coder.GenerateRegister()
		k := v.coder.GenerateRegister()
		exc := v.coder.GenerateRegister()
		c := v.coder.GenerateRegister()
		t := v.coder.GenerateRegister()

		v.coder.EmitMov(rt, v.regRt)
		v.coder.EmitMov(rti, v.regRti)
		v.coder.EmitMov(k, v.regK)
		v.coder.EmitMov(exc, v.regExc)
		v.coder.EmitMov(c, r)
		v.coder.EmitArray(t, rt, c)

		x := v.coder.GenerateRegister()
		v.coder.EmitConcatX(x, t, v.regFrame, frameArgOffset+v.arity)
		v.regK = x
	case stateExpr:
		r := v.binding(p, name)
		v.coder.EmitSet(v.regRt, v.regRti, r)
	}
}

func (v *codeVisitor) VisitApplication(p ast.Position, terms []ast.Node) {
	switch v.state {
	case statePattern:
		r := v.current
		l := v.failLabel

		var first, last vm.Reg
		for n := range terms {
			last = v.coder.GenerateRegister()
			if n == 0 {
				first = last
			}
		}
		v.coder.EmitSplit(first, last, r)
		v.coder.EmitFail(l)

		reg := first
		for _, a := range terms {
			v.current = reg
			v.Self.Visit(a)
			reg++
		}

	case stateExprRoot, stateExpr:
		rt := v.coder.GenerateRegister()
		rti := v.coder.GenerateRegister()
		k := v.coder.GenerateRegister()
		exc := v.coder.GenerateRegister()
		c := v.coder.GenerateRegister()

		var first, last vm.Reg
		sz := len(terms)
		for n := 1; n < sz; n++ {
			last = v.coder.GenerateRegister()
			if n == 1 {
				first = last
			}
		}

		t := v.coder.GenerateRegister()

		v.coder.EmitMov(rt, v.regRt)
		v.coder.EmitMov(rti, v.regRti)
		v.coder.EmitMov(k, v.regK)
		v.coder.EmitMov(exc, v.regExc)

		// materialize the head; variables and combinators go into the
		// thunk directly, anything else becomes a nested store
		headDirect := false
		switch head := terms[0].(type) {
		case *ast.Variable:
			v.coder.EmitMov(c, v.binding(head.Pos(), head.Name))
			headDirect = true
		case *ast.Combinator:
			o := v.machine.GetCombinator(head.Path, head.Name)
			v.coder.EmitData(c, v.coder.Constant(o))
			headDirect = true
		default:
			v.coder.EmitNil(c)
		}

		z := first
		for n := 1; n < sz; n++ {
			v.coder.EmitNil(z)
			z++
		}
		v.coder.EmitArray(t, rt, last)

		root := v.coder.GenerateRegister()
		if v.state == stateExprRoot {
			v.state = stateExpr
			v.coder.EmitConcatX(root, t, v.regFrame, frameArgOffset+v.arity)
		} else {
			root = t
		}
		v.regK = root
		v.regRt = root

		// fill the slots that could not be materialized directly
		if !headDirect {
			d := v.coder.Constant(v.machine.CreateInteger(4))
			v.coder.EmitData(rti, d)
			v.regRti = rti
			v.Self.Visit(terms[0])
		}

		for n := 1; n < sz; n++ {
			d := v.coder.Constant(v.machine.CreateInteger(int64(n + 4)))
			q := v.coder.GenerateRegister()
			v.coder.EmitData(q, d)
			v.regRt = root
			v.regRti = q
			v.Self.Visit(terms[n])
		}
	}
}

func (v *codeVisitor) VisitTagged(p ast.Position, pattern, tagger ast.Node) {
	switch v.state {
	case statePattern:
		r := v.current
		l := v.failLabel

		if pattern.Tag() != ast.TagVariable {
			diag.FatalAt(p.Diag(), "variable expected")
		}
		v.Self.Visit(pattern) // records the binding

		if tagger.Tag() != ast.TagCombinator {
			diag.FatalAt(p.Diag(), "combinator expected")
		}
		path, name := splitCombinator(tagger)
		o := v.machine.GetCombinator(path, name)
		d := v.coder.Constant(o)

		rt := v.coder.GenerateRegister()
		v.coder.EmitData(rt, d)
		v.coder.EmitTag(r, rt)
		v.coder.EmitFail(l)
	default:
		diag.FatalAt(p.Diag(), "tag in expression")
	}
}

func (v *codeVisitor) VisitMatch(p ast.Position, patterns []ast.Node, guard, result ast.Node) {
	mark := v.coder.PeekRegister()
	frame := v.regFrame

	l := v.coder.GenerateLabel()
	v.failLabel = l

	arity := len(patterns)
	v.arity = arity
	var first, last vm.Reg
	for n := 0; n < arity; n++ {
		last = v.coder.GenerateRegister()
		if n == 0 {
			first = last
		}
	}

	if arity > 0 {
		v.coder.EmitTakeX(first, last, frame, frameArgOffset)
		v.coder.EmitFail(l)
	}

	v.state = statePattern
	reg := first
	for _, m := range patterns {
		v.current = reg
		reg++
		v.Self.Visit(m)
	}

	// no code is emitted for a guard: the result is taken whenever the
	// patterns match
	v.state = stateExprRoot
	v.Self.Visit(result)

	// every clause ends in a return
	v.coder.EmitReturn(v.regK)

	v.coder.EmitLabel(l)
	v.coder.RestoreRegister(mark)
}

func (v *codeVisitor) VisitBlock(p ast.Position, matches []ast.Node) {
	// the link registers stay invariant across the clauses
	rt := v.regRt
	rti := v.regRti
	k := v.regK
	exc := v.regExc

	for _, m := range matches {
		v.regRt = rt
		v.regRti = rti
		v.regK = k
		v.regExc = exc
		v.Self.Visit(m)
	}
}

func (v *codeVisitor) VisitTry(p ast.Position, body, handler ast.Node) {
	rt := v.regRt
	rti := v.regRti
	k := v.regK
	exc := v.regExc

	// the handler thunk shares the surrounding continuation and leaves a
	// hole for the handler combinator
	eRt := v.coder.GenerateRegister()
	eRti := v.coder.GenerateRegister()
	eK := v.coder.GenerateRegister()
	eExc := v.coder.GenerateRegister()
	eArg0 := v.coder.GenerateRegister()
	eArg1 := v.coder.GenerateRegister()

	v.coder.EmitMov(eRt, rt)
	v.coder.EmitMov(eRti, rti)
	v.coder.EmitMov(eK, k)
	v.coder.EmitMov(eExc, exc)
	v.coder.EmitNil(eArg0)
	v.coder.EmitNil(eArg1)

	newExc := v.coder.GenerateRegister()
	v.coder.EmitArray(newExc, eRt, eArg1)

	// the protected body runs with the new handler installed
	v.regExc = newExc
	v.Self.Visit(body)

	// the handler expression evaluates under the old handler and drops
	// its value into the handler thunk's combinator slot
	newExcI := v.coder.GenerateRegister()
	d := v.coder.Constant(v.machine.CreateInteger(4))
	v.coder.EmitData(newExcI, d)

	v.regExc = exc
	v.regRt = newExc
	v.regRti = newExcI
	v.Self.Visit(handler)

	v.regRt = rt
	v.regRti = rti
}

func (v *codeVisitor) VisitThrow(p ast.Position, expr ast.Node) {
	diag.FatalAt(p.Diag(), "throw not lowered to combinator")
}

func (v *codeVisitor) VisitDataDecl(p ast.Position, combinators []ast.Node) {
	for _, n := range combinators {
		if n.Tag() != ast.TagCombinator {
			diag.FatalAt(n.Pos().Diag(), "combinator expected")
		}
		path, name := splitCombinator(n)
		d := vm.NewData(path, name)
		v.machine.DefineData(d)
		v.out = append(v.out, d)
	}
}

// emitDefinition compiles one definition body and registers the bytecode
// object under the definition's combinator.
func (v *codeVisitor) emitDefinition(p ast.Position, combinator, body ast.Node) {
	frame := v.coder.GenerateRegister()

	l := v.coder.GenerateLabel()
	v.failLabel = l

	rt := v.coder.GenerateRegister()
	rti := v.coder.GenerateRegister()
	k := v.coder.GenerateRegister()
	exc := v.coder.GenerateRegister()
	c := v.coder.GenerateRegister()

	v.regFrame = frame
	v.regRt = rt
	v.regRti = rti
	v.regK = k
	v.regExc = exc
	v.arity = 0

	v.coder.EmitTakeX(rt, c, frame, 0)
	v.coder.EmitFail(l)
	v.state = stateExprRoot
	v.Self.Visit(body)
	v.coder.EmitLabel(l)

	// no clause matched: park the frame in the result thunk
	em := v.coder.GenerateRegister()
	r := v.coder.GenerateRegister()

	v.coder.EmitArray(em, rti, rt) // empty range, empty array
	v.coder.EmitConcatX(r, em, frame, 4)
	v.coder.EmitSet(rt, rti, r)
	v.coder.EmitReturn(k)

	v.coder.Relabel()
	path, name := splitCombinator(combinator)
	b := vm.NewBytecode(v.coder.Code(), v.coder.Data(), path, name)
	v.machine.DefineData(b)
	v.out = append(v.out, b)

	v.coder.Reset()
}

func (v *codeVisitor) VisitDefinition(p ast.Position, combinator, body ast.Node) {
	v.emitDefinition(p, combinator, body)
}

func (v *codeVisitor) VisitValueDecl(p ast.Position, combinator, body ast.Node) {
	v.emitDefinition(p, combinator, body)
}

func (v *codeVisitor) VisitOperatorDecl(p ast.Position, combinator, body ast.Node) {
	v.emitDefinition(p, combinator, body)
}

// Code generates and registers a bytecode object for every definition of
// a lifted module, in module order.
func Code(m *vm.Machine, a ast.Node) (out []vm.Object, err error) {
	defer diag.Recover(&err)
	v := &codeVisitor{
		machine:   m,
		coder:     NewCoder(m),
		variables: map[string]vm.Reg{},
	}
	v.Self = v
	v.Self.Visit(a)
	return v.out, nil
}
