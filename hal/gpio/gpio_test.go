package gpio

import "testing"

func TestLEDSetToggleGet(t *testing.T) {
	m := New()
	if m.LED(LEDRed) {
		t.Fatal("LED on at start")
	}
	m.SetLED(LEDRed, true)
	if !m.LED(LEDRed) || m.Brightness(LEDRed) != 100 {
		t.Errorf("after SetLED: on=%v brightness=%d", m.LED(LEDRed), m.Brightness(LEDRed))
	}
	m.ToggleLED(LEDRed)
	if m.LED(LEDRed) || m.Brightness(LEDRed) != 0 {
		t.Errorf("after Toggle: on=%v brightness=%d", m.LED(LEDRed), m.Brightness(LEDRed))
	}
}

func TestBrightnessCouplesState(t *testing.T) {
	m := New()
	m.SetBrightness(LEDGreen, 40)
	if !m.LED(LEDGreen) || m.Brightness(LEDGreen) != 40 {
		t.Errorf("on=%v brightness=%d, want on, 40", m.LED(LEDGreen), m.Brightness(LEDGreen))
	}
	m.SetBrightness(LEDGreen, 0)
	if m.LED(LEDGreen) {
		t.Error("LED still on at 0% duty")
	}
	m.SetBrightness(LEDBlue, 150)
	if m.Brightness(LEDBlue) != 100 {
		t.Errorf("brightness = %d, want clamped 100", m.Brightness(LEDBlue))
	}
}

func TestButtonSim(t *testing.T) {
	m := New()
	if m.ReadButton(ButtonUser) {
		t.Fatal("button pressed at start")
	}
	m.SimSetButton(ButtonUser, true)
	if !m.ReadButton(ButtonUser) {
		t.Error("button not pressed after SimSetButton")
	}
	if m.ReadButton(ButtonUser2) {
		t.Error("other button affected")
	}
}

func TestOutOfRangeIgnored(t *testing.T) {
	m := New()
	m.SetLED(LEDCount, true)
	m.SetBrightness(LEDCount+1, 50)
	m.SimSetButton(ButtonCount, true)
	if m.LED(LEDCount) || m.Brightness(LEDCount) != 0 || m.ReadButton(ButtonCount) {
		t.Error("out-of-range access leaked state")
	}
}
