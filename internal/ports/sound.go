package ports

// SoundPlayer plays notification sounds
type SoundPlayer interface {
	// PlaySound plays the default notification sound
	PlaySound() error

	// PlaySoundNamed plays a named sound cue, falling back to the default one
	PlaySoundNamed(name string) error
}
