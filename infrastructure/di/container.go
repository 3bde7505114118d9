package di

// Start launches the container's background work. Only the config watcher
// runs in the background, and only when the config came from a file.
func (c *Container) Start() {
	if c.Watcher != nil {
		c.Watcher.Start()
	}
}

// Close stops background work and flushes the logger
func (c *Container) Close() {
	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
