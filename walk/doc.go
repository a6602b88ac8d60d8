// Package walk is the public API of fw's non-recursive filesystem walker.
//
// Iterating by hand gives full control over errors:
//
//	w, err := walk.New("/var/log", walk.WalkOptions{})
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	for {
//		entry, err := w.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			if walk.IsFatal(err) {
//				return err
//			}
//			log.Printf("skipping: %v", err)
//			continue
//		}
//		fmt.Println(entry.Depth, entry.Path)
//	}
//
// Walk and WalkWithOptions run the same loop with a callback and one of the
// ErrorHandling modes.
//
// Watch Functionality
//
//	err := walk.Watch(ctx, "/path/to/watch", walk.WatchOptions{}, func(ctx context.Context, result walk.WatchResult) error {
//		if result.Error != nil {
//			return result.Error
//		}
//		fmt.Printf("Event: %s, File: %s\n", result.Message.Event, result.Message.Path)
//		return nil
//	})
package walk
