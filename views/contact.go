package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/storyframe/contact"
	"github.com/eringen/storyframe/markup"
)

// ContactSection renders the contact form. The form posts to /contact/;
// the embedded script submits it in place and reverts the status line to
// idle after contact.RevertAfter.
func ContactSection(form ContactForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		mw.Raw(`<section id="contact" class="py-24"><div class="mx-auto max-w-2xl px-6">`)
		mw.Raw(`<div class="mb-12 text-center"><h2 class="mb-4 text-3xl font-bold md:text-4xl">Get in Touch</h2>`)
		mw.Raw(`<p class="text-lg text-muted-foreground">Send us a note and we will get back to you.</p></div>`)

		mw.Raw(`<form name="contact" method="POST" action="/contact/" class="space-y-6" data-contact-form`).
			Attr("data-revert-ms", "3000").Raw(">")
		mw.Raw(`<input type="hidden" name="_csrf"`).Attr("value", form.CSRF).Raw("/>")
		mw.Raw(`<input type="hidden" name="`, contact.FieldFormName, `" value="`, contact.FormName, `"/>`)
		mw.Raw(`<p class="hidden"><label>Don't fill this out if you're human: <input name="`, contact.FieldHoneypot, `" tabindex="-1" autocomplete="off"/></label></p>`)
		input := `w-full rounded-md border border-border bg-background px-4 py-2 placeholder:text-muted-foreground focus:outline-none focus:ring-2 focus:ring-primary`
		mw.Raw(`<div class="grid gap-6 md:grid-cols-2">`)
		mw.Raw(`<input type="text" name="`, contact.FieldName, `" placeholder="Your Name" required`).Attr("class", input).Raw("/>")
		mw.Raw(`<input type="email" name="`, contact.FieldEmail, `" placeholder="Your Email" required`).Attr("class", input).Raw("/>")
		mw.Raw(`</div>`)
		mw.Raw(`<input type="text" name="`, contact.FieldSubject, `" placeholder="Subject"`).Attr("class", input).Raw("/>")
		mw.Raw(`<textarea name="`, contact.FieldMessage, `" rows="6" placeholder="Your Message" required`).Attr("class", input).Raw("></textarea>")
		mw.Raw(`<button type="submit" class="w-full rounded-md bg-primary px-6 py-3 font-medium text-primary-foreground hover:bg-primary/90">Send Message</button>`)
		ContactStatus(mw, form.Status)
		mw.Raw(`</form></div></section>`)
		return mw.Err()
	})
}

// ContactStatus writes the status line. Idle renders an empty live region.
func ContactStatus(mw *markup.Writer, s contact.Status) {
	class := "min-h-[1.25rem] text-center text-sm"
	switch s {
	case contact.Success:
		class += " text-green-500"
	case contact.Error:
		class += " text-red-500"
	}
	mw.Raw(`<p role="status" aria-live="polite" data-contact-status`).
		Attr("data-status", s.String()).Attr("class", class).Raw(">").
		Text(s.Message()).Raw("</p>")
}
