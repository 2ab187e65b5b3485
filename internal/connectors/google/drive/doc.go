// Package drive reads images from Google Drive.
//
// FileIDFromURL recognises two URL shapes:
//
//	https://drive.google.com/open?id=<ID>
//	https://docs.google.com/drawings/d/<ID>[/edit...]
//
// Client fetches the restricted metadata set (mimeType, modifiedTime,
// trashed, webContentLink), exports Drawings server-side, and downloads
// plain image blobs from their content link.
package drive
