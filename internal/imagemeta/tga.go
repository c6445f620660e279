package imagemeta

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

// decodeTGA reads an uncompressed or RLE-compressed 24/32-bit TGA image:
// just enough of the format, read field by field off a buffered reader,
// to recover pixel data and alpha.
func decodeTGA(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	header := make([]byte, 18)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("tga: read header: %w", err)
	}

	idLength := int(header[0])
	colorMapType := header[1]
	imageType := header[2]
	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images unsupported")
	}

	width := int(header[12]) | int(header[13])<<8
	height := int(header[14]) | int(header[15])<<8
	bpp := int(header[16])
	descriptor := header[17]

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tga: invalid dimensions %dx%d", width, height)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	if idLength > 0 {
		if _, err := io.CopyN(io.Discard, br, int64(idLength)); err != nil {
			return nil, fmt.Errorf("tga: skip image id: %w", err)
		}
	}

	rle := imageType == 10
	bytesPerPixel := bpp / 8
	pixels := make([]byte, width*height*bytesPerPixel)

	if rle {
		if err := readRLE(br, pixels, bytesPerPixel); err != nil {
			return nil, err
		}
	} else {
		if _, err := io.ReadFull(br, pixels); err != nil {
			return nil, fmt.Errorf("tga: read pixel data: %w", err)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	topDown := descriptor&0x20 != 0

	for row := 0; row < height; row++ {
		srcRow := row
		dstRow := height - 1 - row
		if topDown {
			dstRow = row
		}
		for col := 0; col < width; col++ {
			off := (srcRow*width + col) * bytesPerPixel
			bb, gg, rr := pixels[off], pixels[off+1], pixels[off+2]
			aa := byte(255)
			if bytesPerPixel == 4 {
				aa = pixels[off+3]
			}
			img.SetNRGBA(col, dstRow, color.NRGBA{R: rr, G: gg, B: bb, A: aa})
		}
	}

	return img, nil
}

func readRLE(br *bufio.Reader, out []byte, bytesPerPixel int) error {
	i := 0
	for i < len(out) {
		packetHeader, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("tga: read rle packet: %w", err)
		}
		count := int(packetHeader&0x7f) + 1

		if packetHeader&0x80 != 0 {
			px := make([]byte, bytesPerPixel)
			if _, err := io.ReadFull(br, px); err != nil {
				return fmt.Errorf("tga: read rle pixel: %w", err)
			}
			for c := 0; c < count && i < len(out); c++ {
				copy(out[i:i+bytesPerPixel], px)
				i += bytesPerPixel
			}
		} else {
			raw := make([]byte, count*bytesPerPixel)
			if _, err := io.ReadFull(br, raw); err != nil {
				return fmt.Errorf("tga: read raw run: %w", err)
			}
			n := copy(out[i:], raw)
			i += n
		}
	}
	return nil
}
