package codegen

func (p *pass) emit(blocks [][]stmt) string {
	w := p.w
	syn := p.g.syn
	beautify := p.g.opt.Beautify

	w.Line(syn.FuncKeyword + " " + p.g.opt.FuncName + "()")
	w.Line("{")
	w.IndentPush()
	w.Line(syn.ResultDecl + " result = " + syn.FalseLit + ";")

	if len(p.decls) > 0 && beautify {
		w.Blank()
	}
	for _, d := range p.decls {
		w.Line(d)
	}

	if len(blocks) == 0 {
		w.Line("result = true;")
	}
	for _, b := range blocks {
		if beautify {
			w.Blank()
		}
		p.emitStmts(b)
	}

	if beautify {
		w.Blank()
	}
	w.Line("return result;")
	w.IndentPop()
	w.Line("}")
	return w.String()
}

func (p *pass) emitStmts(stmts []stmt) {
	for i, s := range stmts {
		if !s.isGuard() {
			p.w.Line(s.text)
			if p.g.opt.Beautify && i+1 < len(stmts) && stmts[i+1].isGuard() {
				p.w.Blank()
			}
			continue
		}
		p.w.Line("if (" + s.cond + ") {")
		p.w.IndentPush()
		p.emitStmts(s.body)
		p.w.IndentPop()
		p.w.Line("}")
	}
}
