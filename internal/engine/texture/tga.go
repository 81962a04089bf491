package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const (
	tgaHeaderSize = 18
	tgaMaxPacket  = 128 // pixels covered by one RLE packet
)

var errTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes a TGA image.
// Supports uncompressed (type 2) and RLE compressed (type 10) true-color files
// at 24 or 32 bits per pixel, which covers what panorama stitchers export.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("TGA has empty dimensions %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	src := data[offset:]

	// Reject sizes the payload cannot fill before allocating the image.
	pixelSize := bpp / 8
	pixels := width * height
	if imageType == TGATypeUncompressed {
		if len(src) < pixels*pixelSize {
			return nil, errTGATruncated
		}
	} else if pixels > len(src)/(1+pixelSize)*tgaMaxPacket {
		return nil, errTGATruncated
	}

	d := &tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         src,
		width:       width,
		height:      height,
		bpp:         pixelSize,
		topToBottom: descriptor&0x20 != 0,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.decodeRaw()
	} else {
		err = d.decodeRLE()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	width       int
	height      int
	bpp         int
	topToBottom bool
}

// next reads one BGR(A) pixel from the source stream.
func (d *tgaDecoder) next() (color.RGBA, error) {
	if d.pos+d.bpp > len(d.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores pixel number i (in file order), honoring the origin bit.
func (d *tgaDecoder) put(i int, c color.RGBA) {
	x, y := i%d.width, i/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	for i := 0; i < d.width*d.height; i++ {
		c, err := d.next()
		if err != nil {
			return err
		}
		d.put(i, c)
	}
	return nil
}

// decodeRLE ignores bytes after the last pixel but fails on a stream that
// ends before every pixel is covered.
func (d *tgaDecoder) decodeRLE() error {
	total := d.width * d.height
	i := 0
	for i < total {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := d.next()
			if err != nil {
				return err
			}
			for ; count > 0 && i < total; count-- {
				d.put(i, c)
				i++
			}
			continue
		}

		for ; count > 0 && i < total; count-- {
			c, err := d.next()
			if err != nil {
				return err
			}
			d.put(i, c)
			i++
		}
	}
	return nil
}
