package ui

import (
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/servoset/controller"
	"github.com/calvinmclean/servoset/servolink"
)

type ConfigWindow struct {
	app      fyne.App
	OnSubmit func()
}

func NewConfigWindow(app fyne.App) *ConfigWindow {
	return &ConfigWindow{
		app: app,
	}
}

func (cw *ConfigWindow) loadConfigFromPreferences(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	if cfg.SerialPort == "" {
		cfg.SerialPort = prefs.StringWithFallback("serialPort", "")
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = prefs.IntWithFallback("baudRate", servolink.DefaultBaudRate)
	}
	if cfg.FrameFile == "" {
		cfg.FrameFile = prefs.StringWithFallback("frameFile", "")
	}
}

func (cw *ConfigWindow) saveConfigToPreferences(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	prefs.SetString("serialPort", cfg.SerialPort)
	prefs.SetInt("baudRate", cfg.BaudRate)
	prefs.SetString("frameFile", cfg.FrameFile)
}

// Show asks for the serial port and frame file. Values already set in cfg take precedence over
// saved preferences. OnSubmit is called once cfg is complete.
func (cw *ConfigWindow) Show(cfg *controller.Config) {
	window := cw.app.NewWindow("Servo Set - Configuration")
	window.Resize(fyne.NewSize(400, 200))
	window.SetCloseIntercept(func() {
		// Treat window close as cancel
		window.Close()
		cw.app.Quit()
	})
	window.Show()

	cw.loadConfigFromPreferences(cfg)

	serialPorts, err := servolink.GetSerialPorts()
	if err != nil && !errors.Is(err, servolink.ErrNoUSBSerial) {
		showError(cw.app, window, fmt.Errorf("error getting serial ports: %w", err))
		return
	}
	serialPorts = append(serialPorts, servolink.SerialPortNone)

	serialEntry := widget.NewSelect(serialPorts, nil)
	if cfg.SerialPort == "" {
		cfg.SerialPort = serialPorts[0]
	}
	serialEntry.SetSelected(cfg.SerialPort)

	baudRateEntry := widget.NewEntry()
	baudRateEntry.SetText(strconv.Itoa(cfg.BaudRate))

	frameFileEntry := widget.NewEntry()
	frameFileEntry.SetPlaceHolder("/path/to/layout.frame")
	frameFileEntry.SetText(cfg.FrameFile)

	submitButton := widget.NewButton("Submit", func() {
		cw.saveConfigToPreferences(cfg)
		window.Close()
		cw.OnSubmit()
	})
	submitButton.Disable()

	validateForm := func() {
		baud, err := strconv.Atoi(baudRateEntry.Text)
		allFieldsValid := serialEntry.Selected != "" &&
			frameFileEntry.Text != "" &&
			err == nil && baud > 0

		if !allFieldsValid {
			submitButton.Disable()
			return
		}

		cfg.SerialPort = serialEntry.Selected
		cfg.BaudRate = baud
		cfg.FrameFile = frameFileEntry.Text
		submitButton.Enable()
	}

	// Add listeners to field changes
	serialEntry.OnChanged = func(_ string) { validateForm() }
	baudRateEntry.OnChanged = func(_ string) { validateForm() }
	frameFileEntry.OnChanged = func(_ string) { validateForm() }

	// Initial validation
	validateForm()

	form := container.NewVBox(
		widget.NewCard("Configuration", "", container.NewVBox(
			container.NewGridWithColumns(2,
				widget.NewLabel("Serial Port:"),
				serialEntry,
			),
			container.NewGridWithColumns(2,
				widget.NewLabel("Baud Rate:"),
				baudRateEntry,
			),
			container.NewGridWithColumns(2,
				widget.NewLabel("Frame File:"),
				frameFileEntry,
			),
		)),
		container.NewHBox(
			widget.NewButton("Cancel", func() {
				window.Close()
				cw.app.Quit()
			}),
			submitButton,
		),
	)

	window.SetContent(form)
}

// ShowError reports a fatal error and quits once it is dismissed
func (ui *FrameUI) ShowError(err error) {
	window := ui.window
	if window == nil {
		window = ui.app.NewWindow("Servo Set - Error")
		window.Resize(fyne.NewSize(400, 200))
		window.Show()
	}
	showError(ui.app, window, err)
}

func showError(app fyne.App, window fyne.Window, err error) {
	d := dialog.NewError(err, window)
	d.SetOnClosed(func() {
		app.Quit()
	})
	d.Show()
}
