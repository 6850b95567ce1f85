package palette

// Built-in table names.
const (
	Classic = "classic"
	HiRes   = "hires"
)

// Anchor colours shared by the built-in tables. South runs through teal, cyan
// and blue to violet; north through green, yellow and orange to red.
const (
	zeroColor    = "#003040"
	southExtreme = "#4000ff"
	northExtreme = "#ff0020"
)

var classicStops = []Stop{
	{At: 0, South: zeroColor, North: zeroColor},
	{At: 0.01, South: "#004060", North: "#005040"},
	{At: 0.1, South: "#00a0c0", North: "#00a000"},
	{At: 0.25, South: "#00c0ff", North: "#40d000"},
	{At: 0.4, South: "#0040ff", North: "#80ff00"},
	{At: 0.8, South: "#0000c8", North: "#ffb200"},
	{At: 1, South: southExtreme, North: northExtreme},
}

var hiresStops = []Stop{
	{At: 0, South: zeroColor, North: zeroColor},
	{At: 0.005, South: "#003850", North: "#004838"},
	{At: 0.02, South: "#004060", North: "#005040"},
	{At: 0.05, South: "#007090", North: "#007820"},
	{At: 0.1, South: "#00a0c0", North: "#00a000"},
	{At: 0.25, South: "#00c0ff", North: "#40d000"},
	{At: 0.4, South: "#0040ff", North: "#80ff00"},
	{At: 0.8, South: "#0000c8", North: "#ffb200"},
	{At: 1, South: southExtreme, North: northExtreme},
}

func init() {
	for _, def := range []struct {
		name  string
		stops []Stop
		names []string
	}{
		{Classic, classicStops, []string{"near-zero", "low", "low-mid", "mid", "mid-high", "high"}},
		{HiRes, hiresStops, []string{"near-zero", "faint", "low", "low-plus", "low-mid", "mid", "mid-high", "high"}},
	} {
		t, err := BuildTable(def.name, def.stops, def.names...)
		if err != nil {
			panic(err)
		}
		if err := Register(t); err != nil {
			panic(err)
		}
	}
}
