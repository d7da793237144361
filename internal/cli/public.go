package cli

import (
	"bufio"
	"context"
	"strings"
	"sync"

	"restaurant-site/internal/listing"
	"restaurant-site/internal/model"
)

// health handles `health`.
func (a *App) health(ctx context.Context, args []string) error {
	if err := a.flags("health").Parse(args); err != nil {
		return err
	}

	status, err := a.svc.Admin.Health(ctx)
	if err != nil {
		return err
	}
	return a.writeJSON(status)
}

// menu handles `menu [--search --category --min --max --sort --browse]`.
func (a *App) menu(ctx context.Context, args []string) error {
	fs := a.flags("menu")
	search := fs.String("search", "", "search item names and descriptions")
	categories := fs.String("category", "", "comma-separated category allow-list")
	minPrice := fs.String("min", "0", "minimum price")
	maxPrice := fs.String("max", "50", "maximum price")
	sortBy := fs.String("sort", string(listing.SortName), "name, name-desc, price, price-desc or category")
	browse := fs.Bool("browse", false, "read search terms from stdin, one per line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := listing.MenuFilter{
		SearchTerm:         *search,
		SelectedCategories: splitList(*categories),
		PriceRange: listing.PriceRange{
			Min: listing.ParsePrice(*minPrice),
			Max: listing.ParsePrice(*maxPrice),
		},
		SortBy: listing.SortKey(*sortBy),
	}

	loaded := a.svc.Menu.Load(ctx)
	if loaded.Degraded() {
		a.logger.Info().Str("reason", loaded.Reason).Msg("showing static menu")
	}

	if *browse {
		return a.browseMenu(ctx, loaded, filter)
	}

	return a.writeJSON(filteredMenu(loaded, filter))
}

// browseMenu re-filters the menu as search terms arrive on stdin. Only the
// last term of a burst typed within the debounce delay is rendered.
func (a *App) browseMenu(ctx context.Context, loaded model.Sourced[model.Menu], filter listing.MenuFilter) error {
	debouncer := listing.NewDebouncer(a.debounce)
	defer debouncer.Stop()

	var (
		mu       sync.Mutex
		writeErr error
	)
	render := func(f listing.MenuFilter) func() {
		return func() {
			if err := a.writeJSON(filteredMenu(loaded, f)); err != nil {
				mu.Lock()
				writeErr = err
				mu.Unlock()
			}
		}
	}

	scanner := bufio.NewScanner(a.stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		filter.SearchTerm = scanner.Text()
		debouncer.Trigger(render(filter))
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	debouncer.Flush()

	mu.Lock()
	defer mu.Unlock()
	return writeErr
}

func filteredMenu(loaded model.Sourced[model.Menu], f listing.MenuFilter) model.Sourced[model.Menu] {
	return model.Sourced[model.Menu]{
		Source: loaded.Source,
		Data:   listing.ApplyMenuFilter(loaded.Data, f),
		Reason: loaded.Reason,
	}
}

// gallery handles `gallery [--search --year]`.
func (a *App) gallery(ctx context.Context, args []string) error {
	fs := a.flags("gallery")
	search := fs.String("search", "", "search images, awards and reviews")
	year := fs.String("year", "", "only awards from this year")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loaded := a.svc.Gallery.Load(ctx)
	loaded.Data = model.Gallery{
		Images:  listing.Apply[model.GalleryImage](loaded.Data.Images, listing.ImageQuery{Search: *search}),
		Awards:  listing.Apply[model.Award](loaded.Data.Awards, listing.AwardQuery{Search: *search, Year: *year}),
		Reviews: listing.Apply[model.Review](loaded.Data.Reviews, listing.ReviewQuery{Search: *search}),
	}

	return a.writeJSON(loaded)
}

// about handles `about`.
func (a *App) about(ctx context.Context, args []string) error {
	if err := a.flags("about").Parse(args); err != nil {
		return err
	}
	return a.writeJSON(a.svc.About.Load(ctx))
}

// reserve handles `reserve --name --email [--phone] --time --guests [--notify]`.
func (a *App) reserve(ctx context.Context, args []string) error {
	fs := a.flags("reserve")
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "contact phone")
	slot := fs.String("time", "", "time slot, e.g. 2026-05-02T19:00")
	guests := fs.Int("guests", 0, "number of guests")
	notify := fs.Bool("notify", false, "ask the backend to email a confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := a.svc.Reservations.Create(ctx, model.ReservationRequest{
		CustomerName:   strings.TrimSpace(*name),
		Email:          strings.TrimSpace(*email),
		Phone:          strings.TrimSpace(*phone),
		TimeSlot:       *slot,
		NumberOfGuests: *guests,
	})
	if err != nil {
		return err
	}

	if *notify {
		if _, err := a.svc.Email.SendReservationConfirmation(ctx, created.Reservation); err != nil {
			a.logger.Warn().Err(err).Int("reservation_id", created.Reservation.ID).Msg("confirmation email not sent")
		}
	}

	return a.writeJSON(created)
}

func (a *App) lookupPair(name string, args []string) (model.LookupPair, error) {
	fs := a.flags(name)
	email := fs.String("email", "", "email used for the booking")
	id := fs.Int("id", 0, "reservation ID")
	if err := fs.Parse(args); err != nil {
		return model.LookupPair{}, err
	}
	return model.LookupPair{Email: strings.TrimSpace(*email), ReservationID: *id}, nil
}

// lookup handles `lookup --email --id`.
func (a *App) lookup(ctx context.Context, args []string) error {
	pair, err := a.lookupPair("lookup", args)
	if err != nil {
		return err
	}

	r, err := a.svc.Reservations.Lookup(ctx, pair)
	if err != nil {
		return err
	}
	return a.writeJSON(r)
}

// cancel handles `cancel --email --id`.
func (a *App) cancel(ctx context.Context, args []string) error {
	pair, err := a.lookupPair("cancel", args)
	if err != nil {
		return err
	}

	resp, err := a.svc.Reservations.Cancel(ctx, pair)
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

// subscribe handles `subscribe --email`.
func (a *App) subscribe(ctx context.Context, args []string) error {
	fs := a.flags("subscribe")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.svc.Newsletter.Signup(ctx, *email)
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
