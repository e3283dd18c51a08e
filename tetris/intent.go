package tetris

// Intent is an already-decoded player request.
type Intent uint8

// All possible intents.
const (
	NoOp Intent = iota
	MoveLeft
	MoveRight
	SoftDrop
	HardDrop
	RotateCW

	// intentLimit is used to iterate through all intents.
	intentLimit
)

func (i Intent) String() string {
	switch i {
	case NoOp:
		return "No_Op"
	case MoveLeft:
		return "Move_Left"
	case MoveRight:
		return "Move_Right"
	case SoftDrop:
		return "Soft_Drop"
	case HardDrop:
		return "Hard_Drop"
	case RotateCW:
		return "Rotate_CW"
	}
	return "Unknown"
}

// Outcome reports the effect of an intent or a gravity step.
type Outcome struct {
	// Moved is true when the piece changed position or rotation.
	Moved bool
	// Locked is true when the piece was made permanent; Lock holds the details.
	Locked bool
	Lock   LockResult
}

// Apply performs one intent on the active piece. A soft drop that cannot move
// down locks the piece, and a hard drop always ends in a lock. Without an
// active piece nothing happens.
func (b *Board) Apply(intent Intent) Outcome {
	if b.piece == nil || b.over {
		return Outcome{}
	}
	x, y := b.piece.X, b.piece.Y
	switch intent {
	case MoveLeft:
		return Outcome{Moved: b.ChangePosition(x-1, y)}
	case MoveRight:
		return Outcome{Moved: b.ChangePosition(x+1, y)}
	case RotateCW:
		return Outcome{Moved: b.Rotate()}
	case SoftDrop:
		return b.Tick()
	case HardDrop:
		var out Outcome
		for b.ChangePosition(x, b.piece.Y+1) {
			out.Moved = true
		}
		out.Locked = true
		out.Lock = b.MakePermanent()
		return out
	}
	return Outcome{}
}

// Tick is one gravity step: the piece falls a row, or locks if it cannot.
func (b *Board) Tick() Outcome {
	if b.piece == nil || b.over {
		return Outcome{}
	}
	if b.ChangePosition(b.piece.X, b.piece.Y+1) {
		return Outcome{Moved: true}
	}
	return Outcome{Locked: true, Lock: b.MakePermanent()}
}
