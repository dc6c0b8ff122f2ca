package handler

func Upload(c *Context) error {
	args, err := c.Parse(nil, "PATH")
	if err != nil {
		return err
	}
	client, err := c.Client()
	if err != nil {
		return err
	}
	ret, err := client.Upload(c.Ctx, args[0])
	if err != nil {
		return err
	}
	c.Success("Uploaded %s to the cloud storage. (%s id: %s)", args[0], ret.Type, c.colorID(ret.ID))
	return nil
}
