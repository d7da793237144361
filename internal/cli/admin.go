package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/export"
	"restaurant-site/internal/listing"
	"restaurant-site/internal/model"
	"restaurant-site/internal/validation"
)

// ErrLoginRequired is returned by admin commands run without a session.
var ErrLoginRequired = errors.New("admin login required: run `restaurant admin login`")

// Messages for admin command lines rejected before any request is sent.
const (
	MsgReservationID   = "Reservation ID is required"
	MsgNothingToUpdate = "Set at least one of -time, -guests or -table"
	MsgMenuItemID      = "Menu item ID is required"
	MsgMenuItemIDOnAdd = "Menu item ID is assigned by the server; omit -id"
	MsgFounderFormat   = "Founder must be given as \"Name=Description\""
)

// admin handles `admin <subcommand>`.
func (a *App) admin(ctx context.Context, args []string) error {
	subs := map[string]command{
		"login":        a.adminLogin,
		"logout":       a.adminLogout,
		"status":       a.adminStatus,
		"reservations": a.requireAdmin(a.adminReservations),
		"newsletter":   a.requireAdmin(a.adminNewsletter),
		"menu":         a.requireAdmin(a.adminMenu),
		"gallery":      a.requireAdmin(a.adminGallery),
		"about":        a.requireAdmin(a.adminAbout),
		"email":        a.requireAdmin(a.adminEmail),
	}
	return a.dispatch(ctx, "admin", subs, args)
}

// dispatch runs the subcommand named by args[0].
func (a *App) dispatch(ctx context.Context, parent string, subs map[string]command, args []string) error {
	if len(args) == 0 {
		a.usage(subs)
		return fmt.Errorf("%s: subcommand required", parent)
	}
	cmd, ok := subs[args[0]]
	if !ok {
		a.usage(subs)
		return fmt.Errorf("%s: unknown subcommand %q", parent, args[0])
	}
	return cmd(ctx, args[1:])
}

func (a *App) requireAdmin(next command) command {
	return func(c context.Context, args []string) error {
		if a.session == nil || !a.session.IsLoggedIn(c) {
			return ErrLoginRequired
		}
		return next(c, args)
	}
}

func (a *App) adminLogin(ctx context.Context, args []string) error {
	fs := a.flags("admin login")
	username := fs.String("username", "", "admin username")
	password := fs.String("password", "", "admin password (defaults to $RESTAURANT_ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv("RESTAURANT_ADMIN_PASSWORD")
	}

	resp, err := a.svc.Admin.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	resp.Token = ""
	return a.writeJSON(resp)
}

func (a *App) adminLogout(ctx context.Context, args []string) error {
	if err := a.flags("admin logout").Parse(args); err != nil {
		return err
	}

	resp, err := a.svc.Admin.Logout(ctx)
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func (a *App) adminStatus(ctx context.Context, args []string) error {
	if err := a.flags("admin status").Parse(args); err != nil {
		return err
	}

	loggedIn, err := a.svc.Admin.Status(ctx)
	if err != nil {
		return err
	}
	return a.writeJSON(model.AdminStatus{LoggedIn: loggedIn})
}

// adminReservations handles `admin reservations [list|export|update|delete]`.
func (a *App) adminReservations(ctx context.Context, args []string) error {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return a.dispatch(ctx, "admin reservations", map[string]command{
			"list":   a.listReservations,
			"export": a.exportReservations,
			"update": a.updateReservation,
			"delete": a.deleteReservation,
		}, args)
	}
	return a.listReservations(ctx, args)
}

func (a *App) listReservations(ctx context.Context, args []string) error {
	fs := a.flags("admin reservations")
	search := fs.String("search", "", "search name, email, phone or ID")
	date := fs.String("date", "", "only this day (YYYY-MM-DD)")
	guests := fs.String("guests", "", "only this party size")
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", listing.DefaultPerPage, "items per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := a.svc.Reservations.List(ctx)
	if err != nil {
		return err
	}

	view := listing.NewView[model.Reservation](items, listing.ReservationQuery{
		Search: *search,
		Date:   *date,
		Guests: *guests,
	}, *perPage)
	view.SetPage(*page)

	return a.writeJSON(newPageOutput(view.Page()))
}

func (a *App) exportReservations(ctx context.Context, args []string) error {
	if err := a.flags("admin reservations export").Parse(args); err != nil {
		return err
	}

	data, err := a.svc.Reservations.Export(ctx)
	if err != nil {
		return err
	}
	return a.save(ctx, export.ReservationsFile, data)
}

func (a *App) updateReservation(ctx context.Context, args []string) error {
	fs := a.flags("admin reservations update")
	id := fs.Int("id", 0, "reservation ID")
	slot := fs.String("time", "", "new time slot")
	guests := fs.Int("guests", 0, "new number of guests")
	table := fs.Int("table", 0, "new table number")
	notify := fs.Bool("notify", false, "email the customer about the change")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var upd model.ReservationUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "time":
			upd.TimeSlot = slot
		case "guests":
			upd.NumberOfGuests = guests
		case "table":
			upd.TableNumber = table
		}
	})

	errs := make(map[string]string)
	if *id <= 0 {
		errs["id"] = MsgReservationID
	}
	if upd.TimeSlot == nil && upd.NumberOfGuests == nil && upd.TableNumber == nil {
		errs["update"] = MsgNothingToUpdate
	}
	if len(errs) > 0 {
		return model.NewValidationError(errs)
	}

	resp, err := a.svc.Reservations.Update(ctx, *id, upd)
	if err != nil {
		return err
	}

	if *notify {
		if r := a.findReservation(ctx, *id); r != nil {
			a.notify(ctx, *r, a.svc.Email.SendReservationUpdate)
		}
	}

	return a.writeJSON(resp)
}

func (a *App) deleteReservation(ctx context.Context, args []string) error {
	fs := a.flags("admin reservations delete")
	id := fs.Int("id", 0, "reservation ID")
	notify := fs.Bool("notify", false, "email the customer about the cancellation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var target *model.Reservation
	if *notify {
		target = a.findReservation(ctx, *id)
	}

	resp, err := a.svc.Reservations.Delete(ctx, *id)
	if err != nil {
		return err
	}

	if target != nil {
		a.notify(ctx, *target, a.svc.Email.SendReservationCancellation)
	}

	return a.writeJSON(resp)
}

// findReservation looks id up in the admin list. Failures are logged and
// yield nil.
func (a *App) findReservation(ctx context.Context, id int) *model.Reservation {
	items, err := a.svc.Reservations.List(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("could not load reservation for notification")
		return nil
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	a.logger.Warn().Int("reservation_id", id).Msg("reservation not found for notification")
	return nil
}

func (a *App) notify(ctx context.Context, r model.Reservation, send func(context.Context, model.Reservation) (*model.MessageResponse, error)) {
	if _, err := send(ctx, r); err != nil {
		a.logger.Warn().Err(err).Int("reservation_id", r.ID).Msg("notification email not sent")
	}
}

// adminNewsletter handles `admin newsletter [list|export]`.
func (a *App) adminNewsletter(ctx context.Context, args []string) error {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return a.dispatch(ctx, "admin newsletter", map[string]command{
			"list":   a.listSignups,
			"export": a.exportSignups,
		}, args)
	}
	return a.listSignups(ctx, args)
}

func (a *App) listSignups(ctx context.Context, args []string) error {
	fs := a.flags("admin newsletter")
	search := fs.String("search", "", "search email, ID or signup date")
	date := fs.String("date", "", "only this day (YYYY-MM-DD)")
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", listing.DefaultPerPage, "items per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := a.svc.Newsletter.List(ctx)
	if err != nil {
		return err
	}

	view := listing.NewView[model.NewsletterSignup](items, listing.SignupQuery{Search: *search, Date: *date}, *perPage)
	view.SetPage(*page)

	return a.writeJSON(newPageOutput(view.Page()))
}

func (a *App) exportSignups(ctx context.Context, args []string) error {
	if err := a.flags("admin newsletter export").Parse(args); err != nil {
		return err
	}

	data, err := a.svc.Newsletter.Export(ctx)
	if err != nil {
		return err
	}
	return a.save(ctx, export.NewsletterFile, data)
}

func (a *App) save(ctx context.Context, name string, data []byte) error {
	if a.sink == nil {
		return fmt.Errorf("no export destination configured")
	}

	location, err := a.sink.Save(ctx, name, data)
	if err != nil {
		return err
	}
	return a.writeJSON(saved{File: name, Location: location, Bytes: len(data)})
}

// adminMenu handles `admin menu create|update|delete`.
func (a *App) adminMenu(ctx context.Context, args []string) error {
	return a.dispatch(ctx, "admin menu", map[string]command{
		"create": a.createMenuItem,
		"update": a.updateMenuItem,
		"delete": a.deleteMenuItem,
	}, args)
}

// menuItemFlags registers the menu item form on fs. The returned function
// builds the item after parsing.
func menuItemFlags(fs *flag.FlagSet) (id *int, item func() model.MenuItem) {
	id = fs.Int("id", 0, "menu item ID")
	name := fs.String("name", "", "item name")
	description := fs.String("description", "", "item description")
	price := fs.String("price", "", "item price")
	category := fs.String("category", "", "Starters, Main Courses, Desserts or Beverages")

	return id, func() model.MenuItem {
		return model.MenuItem{
			Name:        strings.TrimSpace(*name),
			Description: strings.TrimSpace(*description),
			Price:       parseFormPrice(*price),
			Category:    strings.TrimSpace(*category),
		}
	}
}

func (a *App) createMenuItem(ctx context.Context, args []string) error {
	fs := a.flags("admin menu create")
	id, item := menuItemFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id != 0 {
		return model.NewValidationError(map[string]string{"id": MsgMenuItemIDOnAdd})
	}

	resp, err := a.svc.Menu.Create(ctx, item())
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func (a *App) updateMenuItem(ctx context.Context, args []string) error {
	fs := a.flags("admin menu update")
	id, item := menuItemFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return model.NewValidationError(map[string]string{"id": MsgMenuItemID})
	}

	resp, err := a.svc.Menu.Update(ctx, *id, item())
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

// parseFormPrice reads a price field; anything unparsable becomes NaN so
// the validator rejects it.
func parseFormPrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (a *App) deleteMenuItem(ctx context.Context, args []string) error {
	fs := a.flags("admin menu delete")
	id := fs.Int("id", 0, "menu item ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.svc.Menu.Delete(ctx, *id)
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

// adminGallery handles `admin gallery upload|award|review|delete`.
func (a *App) adminGallery(ctx context.Context, args []string) error {
	return a.dispatch(ctx, "admin gallery", map[string]command{
		"upload": a.uploadImage,
		"award":  a.createAward,
		"review": a.createReview,
		"delete": a.deleteGalleryEntry,
	}, args)
}

func (a *App) uploadImage(ctx context.Context, args []string) error {
	fs := a.flags("admin gallery upload")
	path := fs.String("file", "", "image file to upload")
	caption := fs.String("caption", "", "image caption")
	direct := fs.Bool("direct", false, "upload to the image host, then record the URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat image: %w", err)
	}

	contentType, err := detectContentType(f)
	if err != nil {
		return err
	}

	filename := filepath.Base(*path)

	if *direct {
		if a.images == nil {
			return fmt.Errorf("image host is not configured")
		}
		url, err := a.images.Upload(ctx, filename, contentType, f, info.Size())
		if err != nil {
			return err
		}
		resp, err := a.svc.Gallery.CreateImage(ctx, model.GalleryImage{Title: *caption, ImageURL: url})
		if err != nil {
			return err
		}
		return a.writeJSON(model.UploadedImage{Message: resp.Message, ID: resp.ID, URL: url})
	}

	if err := validation.ImageFile(contentType, info.Size(), a.maxImageMB).Err(); err != nil {
		return err
	}

	out, err := a.svc.Gallery.UploadImage(ctx, apiclient.FilePart{
		Filename:    filename,
		ContentType: contentType,
		Reader:      f,
	}, *caption)
	if err != nil {
		return err
	}
	return a.writeJSON(out)
}

// detectContentType guesses from the extension, then from the first bytes.
func detectContentType(f *os.File) (string, error) {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name()))); ct != "" {
		return ct, nil
	}

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to rewind image: %w", err)
	}
	return http.DetectContentType(head[:n]), nil
}

func (a *App) createAward(ctx context.Context, args []string) error {
	fs := a.flags("admin gallery award")
	title := fs.String("title", "", "award title")
	year := fs.String("year", "", "award year")
	description := fs.String("description", "", "award description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.svc.Gallery.CreateAward(ctx, model.Award{Title: *title, Year: *year, Description: *description})
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func (a *App) createReview(ctx context.Context, args []string) error {
	fs := a.flags("admin gallery review")
	content := fs.String("content", "", "review text")
	author := fs.String("author", "", "reviewer")
	source := fs.String("source", "", "publication")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.svc.Gallery.CreateReview(ctx, model.Review{Content: *content, Author: *author, Source: *source})
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func (a *App) deleteGalleryEntry(ctx context.Context, args []string) error {
	fs := a.flags("admin gallery delete")
	kind := fs.String("kind", "image", "image, award or review")
	id := fs.Int("id", 0, "entry ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		resp *model.MessageResponse
		err  error
	)
	switch *kind {
	case "image":
		resp, err = a.svc.Gallery.DeleteImage(ctx, *id)
	case "award":
		resp, err = a.svc.Gallery.DeleteAward(ctx, *id)
	case "review":
		resp, err = a.svc.Gallery.DeleteReview(ctx, *id)
	default:
		return fmt.Errorf("unknown gallery kind %q", *kind)
	}
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

// adminAbout handles `admin about [-about-text -history -mission
// -commitment -founder Name=Description ...]`. Flags left out keep the
// current copy; any -founder replaces the whole founder list.
func (a *App) adminAbout(ctx context.Context, args []string) error {
	fs := a.flags("admin about")
	aboutText := fs.String("about-text", "", "introduction text")
	history := fs.String("history", "", "restaurant history")
	mission := fs.String("mission", "", "mission statement")
	commitment := fs.String("commitment", "", "commitment statement")
	var founders []model.Founder
	fs.Func("founder", "founder as Name=Description (repeatable)", func(v string) error {
		f, err := parseFounder(v)
		if err != nil {
			return err
		}
		founders = append(founders, f)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return err
	}

	current, err := a.svc.About.Get(ctx)
	if err != nil {
		return err
	}

	info := *current
	for _, field := range []struct {
		dst *string
		val string
	}{
		{&info.AboutText, *aboutText},
		{&info.History, *history},
		{&info.Mission, *mission},
		{&info.Commitment, *commitment},
	} {
		if field.val != "" {
			*field.dst = field.val
		}
	}
	if len(founders) > 0 {
		info.Founders = founders
	}

	var resp *model.MessageResponse
	if current.Empty() {
		resp, err = a.svc.About.Create(ctx, info)
	} else {
		resp, err = a.svc.About.Update(ctx, info)
	}
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func parseFounder(v string) (model.Founder, error) {
	name, description, ok := strings.Cut(v, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return model.Founder{}, errors.New(MsgFounderFormat)
	}
	return model.Founder{Name: name, Description: strings.TrimSpace(description)}, nil
}

// adminEmail handles `admin email test`.
func (a *App) adminEmail(ctx context.Context, args []string) error {
	return a.dispatch(ctx, "admin email", map[string]command{
		"test": func(ctx context.Context, args []string) error {
			resp, err := a.svc.Email.Test(ctx)
			if err != nil {
				return err
			}
			return a.writeJSON(resp)
		},
	}, args)
}
