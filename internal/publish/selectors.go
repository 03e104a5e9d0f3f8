package publish

// URLs and selectors for the platform's web upload UI. These track a fixed,
// versioned contract: when Odysee changes its DOM, this file is the one that
// moves.
const (
	signinURL = "https://odysee.com/$/signin"
	uploadURL = "https://odysee.com/$/upload"

	loginUsernameInput = `input#username`
	loginPasswordInput = `input#password`
	loginSubmitButton  = `button[type=submit]`

	videoFileInput     = `#main-content > div > section input[type="file"]`
	titleInput         = `input[name="content_title"]`
	contentNameInput   = `input[name="content_name"]`
	descriptionInput   = `textarea[id="content_description"]`
	thumbnailFileInput = `#main-content > div > div > section input[type="file"]`
	tagInput           = `input.tag__input`

	yearInput = `div.react-datetime-picker__inputGroup input[name="year"]`
	showMoreButton = `#main-content > div > div > section.card--enable-overflow` +
		` div.publish-row.publish-row--more > button.button--link`

	publishButton      = `div.publish__actions button.button--primary`
	modalConfirmButton = `div.ReactModalPortal button.button--primary`
)
