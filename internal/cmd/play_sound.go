package cmd

// PlaySoundCmd plays a notification sound
type PlaySoundCmd struct {
	Cue string `arg:"" optional:"" help:"Sound cue: default or error" default:"default"`
}

// Run executes the sound playing logic
func (p *PlaySoundCmd) Run(cli *CLI) error {
	return cli.Container.SoundPlayer.PlaySoundNamed(p.Cue)
}
