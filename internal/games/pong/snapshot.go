package pong

// Snapshot is a read-only copy of everything a shell needs to draw a frame.
// Shells never hold a reference to the live State.
type Snapshot struct {
	Tick int

	BallX  float64
	BallY  float64
	BallVX float64
	BallVY float64

	PaddleX float64
	Score   int

	GameOver bool

	// Geometry, copied from Params so shells stay decoupled from configuration.
	Width        float64
	Height       float64
	PaddleY      float64
	PaddleWidth  float64
	PaddleHeight float64
	BallSize     float64
}

// Snapshot returns the current frame for rendering.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:         g.tickCount,
		BallX:        g.state.BallX,
		BallY:        g.state.BallY,
		BallVX:       g.state.BallVX,
		BallVY:       g.state.BallVY,
		PaddleX:      g.state.PaddleX,
		Score:        g.state.Score,
		GameOver:     g.state.GameOver,
		Width:        g.params.Width,
		Height:       g.params.Height,
		PaddleY:      g.params.PaddleY(),
		PaddleWidth:  g.params.PaddleWidth,
		PaddleHeight: g.params.PaddleHeight,
		BallSize:     g.params.BallSize,
	}
}
