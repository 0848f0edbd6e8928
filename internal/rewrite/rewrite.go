// Package rewrite implements the tree rewriter (spec §4.7): for every
// carrier whose reflection mode doesn't resolve to `never`, build a
// compiler program, walk its type, and attach the encoded payload; drain the
// hoist queue to fixpoint, producing a `__Ω<Name>` binding per referenced
// alias/interface; and rewrite the recognized auto-type-helper calls and
// `ReceiveType<X>` parameter sites.
//
// Because the host AST's mutation surface is an external collaborator
// (spec §1 puts AST services out of scope, consumed only narrowly), this
// package does not splice tokens into a host tree. It instead produces a
// Result describing every attachment, hoisted binding, and call rewrite the
// host-side printer would apply — the same separation of concerns as the
// teacher compiler's Compiler, which emits a Chunk for a separate VM to run
// rather than running anything itself.
package rewrite

import (
	"fmt"

	"typegen/internal/diagnostic"
	"typegen/internal/pack"
	"typegen/internal/program"
	"typegen/internal/reflectmode"
	"typegen/internal/resolve"
	"typegen/internal/typewalk"
	"typegen/pkg/hostapi"
)

// Payload is the wire-ready result of compiling one carrier or hoisted
// declaration's type: the stack sidecar plus the encoded opcode string,
// matching the payload grammar of spec §4.1/§6.
type Payload struct {
	Stack []pack.Entry
	Code  string
}

func encode(p *program.Program) Payload {
	p.Finalize()
	return Payload{Stack: p.Pack.Stack, Code: p.Pack.Encode()}
}

// ClassAttachment records the static `__type` member a class gains.
type ClassAttachment struct {
	Class   *hostapi.ClassDecl
	Payload Payload
}

// FunctionAttachment records the `Name.__type = payload` assignment
// following a function declaration.
type FunctionAttachment struct {
	Function *hostapi.FunctionDecl
	Payload  Payload
}

// ArrowAttachment records an `Object.assign(fn, { __type: payload })` wrap
// around a function expression or arrow.
type ArrowAttachment struct {
	Arrow   *hostapi.FunctionExpression
	Payload Payload
}

// HoistedBinding is a `const __Ω<Name> = payload;` statement produced by
// draining the hoist queue.
type HoistedBinding struct {
	Name    string
	Payload Payload
}

// CallRewrite records a recognized call site rewrite: either an auto-type
// helper call gaining an appended type-argument payload, or a
// ReceiveType<X>-typed parameter triggering an injected argument at a
// specific position.
type CallRewrite struct {
	Call         *hostapi.CallExpression
	InjectedArgs map[int]Payload
}

// Result aggregates everything one file's rewrite pass produced.
type Result struct {
	Classes   []ClassAttachment
	Functions []FunctionAttachment
	Arrows    []ArrowAttachment
	Hoisted   []HoistedBinding
	Calls     []CallRewrite
}

// Rewriter drives one file's rewrite pass.
type Rewriter struct {
	Resolver *resolve.Resolver
	Probe    *reflectmode.Probe
	Diags    *diagnostic.List
}

// New creates a Rewriter.
func New(resolver *resolve.Resolver, probe *reflectmode.Probe) *Rewriter {
	return &Rewriter{Resolver: resolver, Probe: probe, Diags: &diagnostic.List{}}
}

// TransformSourceFile implements the plug-in entrypoint's
// transformSourceFile contract: walk sf's top-level statements, rewriting
// every carrier whose mode isn't Never, then drain the hoist queue to
// fixpoint.
func (r *Rewriter) TransformSourceFile(sf *hostapi.SourceFile) (*Result, error) {
	res := &Result{}
	hoistProg := program.New()

	for _, stmt := range sf.Statements {
		switch n := stmt.(type) {
		case *hostapi.ClassDecl:
			r.rewriteClass(sf, n, res, hoistProg)
		case *hostapi.FunctionDecl:
			r.rewriteFunctionDecl(sf, n, res, hoistProg)
		case *hostapi.FunctionExpression:
			r.rewriteArrow(sf, n, res, hoistProg)
		case *hostapi.CallExpression:
			r.rewriteCall(sf, n, res, hoistProg)
		}
	}

	if err := r.drainHoists(sf, hoistProg, res); err != nil {
		return nil, err
	}

	return res, nil
}

// TransformBundle is a pass-through over every file in a bundle, matching
// the plug-in entrypoint's transformBundle contract (spec §6).
func (r *Rewriter) TransformBundle(files []*hostapi.SourceFile) ([]*Result, error) {
	results := make([]*Result, len(files))
	for i, f := range files {
		res, err := r.TransformSourceFile(f)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

func (r *Rewriter) rewriteClass(sf *hostapi.SourceFile, c *hostapi.ClassDecl, res *Result, hoistProg *program.Program) {
	if r.Probe.Resolve(sf.FileName, c) == reflectmode.Never {
		return
	}
	prog := program.New()
	w := typewalk.New(prog, r.Resolver, sf.FileName)
	w.WalkClass(c)
	res.Classes = append(res.Classes, ClassAttachment{Class: c, Payload: encode(prog)})
	r.copyHoists(prog, hoistProg)
}

func (r *Rewriter) rewriteFunctionDecl(sf *hostapi.SourceFile, fn *hostapi.FunctionDecl, res *Result, hoistProg *program.Program) {
	if r.Probe.Resolve(sf.FileName, fn) == reflectmode.Never {
		return
	}
	prog := program.New()
	w := typewalk.New(prog, r.Resolver, sf.FileName)
	w.WalkDeclarationBody(&hostapi.TypeAliasDecl{
		Name: fn.Name,
		Type: &hostapi.FunctionTypeNode{
			At:             fn.At,
			TypeParameters: fn.TypeParameters,
			Parameters:     fn.Parameters,
			ReturnType:     fn.ReturnType,
		},
	})
	res.Functions = append(res.Functions, FunctionAttachment{Function: fn, Payload: encode(prog)})
	r.copyHoists(prog, hoistProg)
}

func (r *Rewriter) rewriteArrow(sf *hostapi.SourceFile, fe *hostapi.FunctionExpression, res *Result, hoistProg *program.Program) {
	if r.Probe.Resolve(sf.FileName, fe) == reflectmode.Never {
		return
	}
	prog := program.New()
	w := typewalk.New(prog, r.Resolver, sf.FileName)
	w.WalkType(&hostapi.FunctionTypeNode{
		At:             fe.At,
		TypeParameters: fe.TypeParameters,
		Parameters:     fe.Parameters,
		ReturnType:     fe.ReturnType,
	})
	res.Arrows = append(res.Arrows, ArrowAttachment{Arrow: fe, Payload: encode(prog)})
	r.copyHoists(prog, hoistProg)
}

// copyHoists transfers a per-carrier program's requested hoists into the
// file-wide hoist program's queue, so every carrier's references feed the
// same dedup set (spec §8 invariant 9: a referenced alias/interface is
// emitted exactly once per file).
func (r *Rewriter) copyHoists(from, into *program.Program) {
	for _, req := range from.DrainHoists() {
		into.RequestHoist(req.Key, req.Name, req.Decl, req.Kind)
	}
}

// rewriteCall implements the call-site half of §4.7: the recognized
// auto-type helpers, and ReceiveType<X> parameter injection for any other
// resolvable callee.
func (r *Rewriter) rewriteCall(sf *hostapi.SourceFile, call *hostapi.CallExpression, res *Result, hoistProg *program.Program) {
	if hostapi.AutoTypeHelpers[call.CalleeName] {
		if len(call.TypeArguments) == 0 {
			return
		}
		prog := program.New()
		w := typewalk.New(prog, r.Resolver, sf.FileName)
		w.WalkType(call.TypeArguments[0])
		res.Calls = append(res.Calls, CallRewrite{
			Call:         call,
			InjectedArgs: map[int]Payload{0: encode(prog)},
		})
		r.copyHoists(prog, hoistProg)
		return
	}

	decl, err := r.Resolver.Resolve(sf.FileName, call)
	if err != nil {
		return
	}
	fn, ok := decl.(*hostapi.FunctionDecl)
	if !ok {
		return
	}

	injected := map[int]Payload{}
	for paramIdx, param := range fn.Parameters {
		ref, ok := param.Type.(*hostapi.TypeReference)
		if !ok || ref.Name != "ReceiveType" || len(ref.TypeArguments) == 0 {
			continue
		}
		tpRef, ok := ref.TypeArguments[0].(*hostapi.TypeReference)
		if !ok {
			continue
		}
		for i, tp := range fn.TypeParameters {
			if tp.Name != tpRef.Name {
				continue
			}
			if i >= len(call.TypeArguments) {
				continue
			}
			prog := program.New()
			w := typewalk.New(prog, r.Resolver, sf.FileName)
			w.WalkType(call.TypeArguments[i])
			injected[paramIdx] = encode(prog)
			r.copyHoists(prog, hoistProg)
		}
	}
	if len(injected) > 0 {
		res.Calls = append(res.Calls, CallRewrite{Call: call, InjectedArgs: injected})
	}
}

// drainHoists repeatedly compiles every queued hoist request until the
// queue is empty, since emitting one hoisted declaration's program can
// itself enqueue further references (spec §9, "process the hoist queue to
// fixpoint"). Each request already carries its resolved declaration (attached
// by the walker at the point it asked for the hoist), so no second lookup
// back through the resolver is needed here.
func (r *Rewriter) drainHoists(sf *hostapi.SourceFile, hoistProg *program.Program, res *Result) error {
	seen := map[string]bool{}
	for {
		pending := hoistProg.DrainHoists()
		if len(pending) == 0 {
			return nil
		}
		for _, req := range pending {
			if seen[req.Key] {
				continue
			}
			seen[req.Key] = true

			if req.Decl == nil {
				r.Diags.Add(diagnostic.New(hostapi.Position{}, sf.FileName, "",
					fmt.Sprintf("rewrite: hoist request %q carries no declaration", req.Key)))
				continue
			}

			prog := program.New()
			w := typewalk.New(prog, r.Resolver, sf.FileName)
			w.WalkDeclarationBody(req.Decl)
			res.Hoisted = append(res.Hoisted, HoistedBinding{Name: "__Ω" + req.Name, Payload: encode(prog)})
			r.copyHoists(prog, hoistProg)
		}
	}
}
