package source

import "fmt"

// documentQuery selects one post by slug with image assets and the author
// dereferenced.
const documentQuery = `*[_type == "post" && slug.current == $slug][0] {
  _id,
  title,
  "slug": slug.current,
  mainImage{..., asset->{_id, url, metadata{dimensions{width, height}}}},
  "heroVideoUrl": heroVideo.asset->url,
  body[]{
    ...,
    _type == "image" => {
      ...,
      asset->{_id, _ref, url, metadata{dimensions{width, height}}}
    }
  },
  publishedAt,
  excerpt,
  postStyle,
  "author": author->{name, image, bio}
}`

const previewProjection = `{
  _id,
  title,
  "slug": slug.current,
  mainImage,
  publishedAt,
  "authorName": author->name,
  "excerpt": coalesce(excerpt, body[0].children[0].text)
}`

// listQuery returns the preview query, bounded when limit > 0.
func listQuery(limit int) string {
	q := `*[_type == "post" && defined(slug.current)] | order(publishedAt desc)`
	if limit > 0 {
		q += fmt.Sprintf("[0...%d]", limit)
	}
	return q + " " + previewProjection
}
