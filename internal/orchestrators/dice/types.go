package dice

// RollDieInput defines the request for rolling one die
type RollDieInput struct {
	Size int
}

// RollDieOutput defines the response for rolling one die
type RollDieOutput struct {
	Roll int
}

// RollInput defines the request for rolling dice notation
type RollInput struct {
	// Notation is "XdY", e.g. "2d6"
	Notation string
}

// RollOutput defines the response for rolling dice notation
type RollOutput struct {
	Notation string
	Dice     []int
	Total    int
}

// TestInput defines the request for a characteristic test
type TestInput struct {
	Characteristic int
	Modifier       int
}

// TestOutput defines the result of a characteristic test.
// Degrees counts whole tens between Roll and Target, for success and failure alike.
type TestOutput struct {
	Success bool
	Roll    int
	Target  int
	Degrees int
}
