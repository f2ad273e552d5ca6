package tetris

import "context"

// fixedSource replays values in order, wrapping around.
type fixedSource struct {
	values []uint64
	next   int
}

func sourceOf(values ...uint64) *fixedSource {
	return &fixedSource{values: values}
}

func (f *fixedSource) Uint64() uint64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

type drawCall struct {
	col, row int
	color    Color
}

type recordingRenderer struct {
	draws    []drawCall
	previews []drawCall
	status   int
	flushes  int
	clears   int
	level    int
	points   int64
}

func (r *recordingRenderer) DrawCell(col, row int, c Color) {
	r.draws = append(r.draws, drawCall{col, row, c})
}

func (r *recordingRenderer) DrawPreviewCell(col, row int, c Color) {
	r.previews = append(r.previews, drawCall{col, row, c})
}

func (r *recordingRenderer) ShowStatus(level int, points int64) {
	r.status++
	r.level, r.points = level, points
}

func (r *recordingRenderer) Flush() { r.flushes++ }
func (r *recordingRenderer) Clear() { r.clears++ }

func (r *recordingRenderer) reset() {
	r.draws, r.previews = nil, nil
}

// scriptedInput returns keys in order and then reports cancellation.
type scriptedInput struct {
	keys []rune
}

func (s *scriptedInput) ReadKey(ctx context.Context) (rune, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(s.keys) == 0 {
		return 0, context.Canceled
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}
