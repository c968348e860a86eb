package driver

import (
	"context"
	"time"

	"l5cond/internal/catalog"
	"l5cond/internal/codegen"
	"l5cond/internal/decoder"
	"l5cond/internal/diag"
	"l5cond/internal/dialect"
	"l5cond/internal/model"
	"l5cond/internal/trace"
)

// Options configures a pipeline run.
type Options struct {
	Format         decoder.Format
	Catalog        *catalog.Catalog
	Lang           dialect.Kind
	Gen            codegen.Options
	MaxDiagnostics int
	// DecodeOnly skips code generation.
	DecodeOnly bool
}

func (o Options) withDefaults() Options {
	if o.Format == 0 {
		o.Format = decoder.FormatLocal
	}
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	if o.Lang == dialect.Unknown {
		o.Lang = dialect.C
	}
	if o.Gen.Catalog == nil {
		o.Gen.Catalog = o.Catalog
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 100
	}
	return o
}

// Item is one payload to process.
type Item struct {
	Name string
	Text string // base64
}

// Result is the outcome of one payload. Err holds a fatal failure; the
// other fields are then partially filled (Bag always is).
type Result struct {
	Name    string
	Data    []byte
	Header  decoder.Header
	Model   *model.Model
	Code    string
	Bag     *diag.Bag
	Timings Timings
	Err     error
}

// Run decodes one payload and generates code for it. The tracer is taken
// from ctx.
func Run(ctx context.Context, item Item, opts Options) Result {
	return run(ctx, item, opts.withDefaults(), nil)
}

func run(ctx context.Context, item Item, opts Options, sink ProgressSink) Result {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "run", 0).WithExtra("item", item.Name)

	res := Result{Name: item.Name, Bag: diag.NewBag(opts.MaxDiagnostics)}
	reporter := diag.BagReporter{Bag: res.Bag}

	emit(sink, item.Name, StageDecode, StatusWorking, nil, 0)
	start := time.Now()
	res.Data, res.Err = DecodeBase64(item.Text, reporter)
	if res.Err == nil {
		d := decoder.New(res.Data, decoder.Options{
			Format:     opts.Format,
			Catalog:    opts.Catalog,
			Reporter:   reporter,
			Tracer:     tracer,
			SpanParent: span.ID(),
		})
		res.Model, res.Err = d.Decode()
		res.Header = d.Header()
	}
	res.Timings.Set(StageDecode, time.Since(start))
	if res.Err != nil {
		emitResult(sink, res, StageDecode, StatusError, res.Timings.Duration(StageDecode))
		span.End("failed: " + res.Err.Error())
		return res
	}

	last := StageDecode
	if !opts.DecodeOnly {
		last = StageGenerate
		emit(sink, item.Name, StageGenerate, StatusWorking, nil, 0)
		start = time.Now()
		genSpan := trace.Begin(tracer, trace.ScopePass, "generate", span.ID()).WithExtra("lang", opts.Lang.String())
		res.Code = codegen.New(opts.Lang, opts.Gen).Generate(res.Model)
		genSpan.End("")
		res.Timings.Set(StageGenerate, time.Since(start))
	}

	emitResult(sink, res, last, StatusDone, res.Timings.Total())
	span.End("")
	return res
}
