package game

const (
	Lanes  = 4
	Floors = 3

	// Chart pixels covered by one lane, and the y breakpoints between floors
	laneWidth   = 128
	topFloorY   = 128
	midFloorY   = 256
	NoFloor     = -1
	MinimumHold = 0.1 // Seconds
)

var (
	// World positions of each lane and floor
	LaneX  = [Lanes]float64{-3.75, -1.25, 1.25, 3.75}
	FloorY = [Floors]float64{1.75, 4.25, 6.75}
)

type Cell struct {
	Lane, Floor int
}

// LaneAt projects a chart x coordinate (0-512) onto a lane.
func LaneAt(x int) int {
	lane := x / laneWidth
	if lane < 0 {
		return 0
	}
	if lane > Lanes-1 {
		return Lanes - 1
	}
	return lane
}

// FloorAt projects a chart y coordinate onto a floor. Smaller y is higher on
// screen, which is a higher floor.
func FloorAt(y int) int {
	if y < topFloorY {
		return 2
	} else if y < midFloorY {
		return 1
	}
	return 0
}

func CellAt(x, y int) Cell {
	return Cell{Lane: LaneAt(x), Floor: FloorAt(y)}
}

// FloorAtHeight selects the floor a touch bar at height y is over.
func FloorAtHeight(y float64) int {
	if y < (FloorY[0]+FloorY[1])/2 {
		return 0
	} else if y < (FloorY[1]+FloorY[2])/2 {
		return 1
	}
	return 2
}

// Bar is the vertical touch bar the player steers between floors.
type Bar struct {
	Y      float64
	Active bool // false when no floor is selected
}

func BarAt(floor int) Bar {
	if floor < 0 || floor >= Floors {
		return Bar{}
	}
	return Bar{Y: FloorY[floor], Active: true}
}

func (b Bar) Floor() int {
	if !b.Active {
		return NoFloor
	}
	return FloorAtHeight(b.Y)
}
