// Package overlay draws the session HUD onto camera frames and shows them.
package overlay

import (
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/pomohand/internal/detector"
	"github.com/ayusman/pomohand/internal/timer"
)

// WindowTitle is the title of the preview window.
const WindowTitle = "Pomodoro Hand Control"

var (
	zoneColor     = color.RGBA{R: 100, G: 100, B: 100}
	messageColor  = color.RGBA{G: 255}
	jointColor    = color.RGBA{G: 255}
	boneColor     = color.RGBA{B: 255}
	timerBoxColor = color.RGBA{}

	timerColors = map[timer.Color]color.RGBA{
		timer.Neutral:      {R: 200, G: 200, B: 200},
		timer.PausedOrange: {R: 255, G: 165},
		timer.RunningGreen: {G: 255},
		timer.BreakCyan:    {G: 200, B: 255},
	}
)

// connections are the landmark pairs drawn as the hand skeleton.
var connections = [][2]int{
	{detector.Wrist, detector.ThumbCMC}, {detector.ThumbCMC, detector.ThumbMCP},
	{detector.ThumbMCP, detector.ThumbIP}, {detector.ThumbIP, detector.ThumbTip},
	{detector.Wrist, detector.IndexMCP}, {detector.IndexMCP, detector.IndexPIP},
	{detector.IndexPIP, detector.IndexDIP}, {detector.IndexDIP, detector.IndexTip},
	{detector.IndexMCP, detector.MiddleMCP}, {detector.MiddleMCP, detector.MiddlePIP},
	{detector.MiddlePIP, detector.MiddleDIP}, {detector.MiddleDIP, detector.MiddleTip},
	{detector.MiddleMCP, detector.RingMCP}, {detector.RingMCP, detector.RingPIP},
	{detector.RingPIP, detector.RingDIP}, {detector.RingDIP, detector.RingTip},
	{detector.RingMCP, detector.PinkyMCP}, {detector.Wrist, detector.PinkyMCP},
	{detector.PinkyMCP, detector.PinkyPIP}, {detector.PinkyPIP, detector.PinkyDIP},
	{detector.PinkyDIP, detector.PinkyTip},
}

// Scene is everything the HUD shows for one frame.
type Scene struct {
	// Hand is the evaluated hand, nil when none was detected.
	Hand     *detector.HandLandmarks
	Centered bool
	Message  string
	Timer    timer.Display
}

// HUD draws the gesture zone, hand skeleton, action message and timer box.
type HUD struct {
	// Margin is the gesture zone inset as a fraction of the frame.
	Margin float64
}

// Draw renders s onto img in place.
func (h HUD) Draw(img *gocv.Mat, s Scene) {
	w, ht := img.Cols(), img.Rows()

	// The zone insets by the frame height vertically even though the gate
	// tests against the width; the drawn zone is only a guide.
	mx, my := int(float64(w)*h.Margin), int(float64(ht)*h.Margin)
	gocv.Rectangle(img, image.Rect(mx, my, w-mx, ht-my), zoneColor, 2)
	gocv.PutText(img, "Gesture Zone", image.Pt(mx+10, my+30), gocv.FontHersheySimplex, 0.6, zoneColor, 1)

	if s.Hand != nil && s.Centered {
		drawHand(img, s.Hand)
	}

	gocv.PutText(img, printable(s.Message), image.Pt(10, 40), gocv.FontHersheySimplex, 0.8, messageColor, 2)

	drawTimer(img, s.Timer)
}

func drawHand(img *gocv.Mat, hand *detector.HandLandmarks) {
	w, ht := float64(img.Cols()), float64(img.Rows())
	px := func(i int) image.Point {
		p := hand.Points[i]
		return image.Pt(int(p.X*w), int(p.Y*ht))
	}

	for _, c := range connections {
		gocv.Line(img, px(c[0]), px(c[1]), boneColor, 2)
	}
	for i := range hand.Points {
		gocv.Circle(img, px(i), 2, jointColor, -1)
	}
}

func drawTimer(img *gocv.Mat, d timer.Display) {
	ht := img.Rows()

	overlay := img.Clone()
	defer overlay.Close()

	gocv.Rectangle(&overlay, image.Rect(5, ht-60, 250, ht-5), timerBoxColor, -1)
	gocv.AddWeighted(overlay, 0.6, *img, 0.4, 0, img)

	gocv.PutText(img, d.Text, image.Pt(15, ht-20), gocv.FontHersheySimplex, 1.0, timerColors[d.Color], 2)
}

// printable drops characters the Hershey fonts cannot draw.
func printable(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, s))
}
